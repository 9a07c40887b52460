package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/internal/domain/repository"
	"bloodlink-service/pkg/apperrors"
	"bloodlink-service/pkg/logger"
	"bloodlink-service/pkg/metrics"
	"bloodlink-service/pkg/pagination"
)

// testMetrics is shared because promauto registers into the default
// registry and duplicate registration panics.
var testMetrics = metrics.NewMetrics("bloodlink_usecase_test")

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
func (l nopLogger) With(...interface{}) logger.Logger {
	return l
}

// fakeRequestRepo is an in-memory BloodRequestRepository. Operations take
// the mutex individually, mirroring the per-document atomicity of the real
// store: nothing spans the read-then-insert sequence of the validator.
type fakeRequestRepo struct {
	mu   sync.Mutex
	docs map[string]*entity.BloodRequest
	seq  int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{docs: make(map[string]*entity.BloodRequest)}
}

func (f *fakeRequestRepo) Insert(ctx context.Context, req *entity.BloodRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if req.ID == "" {
		req.ID = fmt.Sprintf("req-%d", f.seq)
	}
	clone := *req
	f.docs[req.ID] = &clone
	return req.ID, nil
}

func (f *fakeRequestRepo) FindByID(ctx context.Context, id string) (*entity.BloodRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	clone := *doc
	return &clone, nil
}

func (f *fakeRequestRepo) FindActiveByPair(ctx context.Context, requesterEmail, donorEmail string) (*entity.BloodRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, doc := range f.docs {
		active := doc.Status.Current == entity.StatusPending || doc.Status.Current == entity.StatusInProgress
		if active && doc.Requester.Email == requesterEmail && doc.Donor.Email == donorEmail {
			clone := *doc
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeRequestRepo) FindInProgressByDonor(ctx context.Context, donorEmail string) (*entity.BloodRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, doc := range f.docs {
		if doc.Status.Current == entity.StatusInProgress && doc.Donor.Email == donorEmail {
			clone := *doc
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeRequestRepo) List(ctx context.Context, filter repository.RequestFilter, p pagination.Params) ([]*entity.BloodRequest, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*entity.BloodRequest
	for _, doc := range f.docs {
		if filter.ParticipantEmail != "" &&
			doc.Requester.Email != filter.ParticipantEmail && doc.Donor.Email != filter.ParticipantEmail {
			continue
		}
		if filter.Status != "" && doc.Status.Current != filter.Status {
			continue
		}
		clone := *doc
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := int(p.Skip())
	if start > len(matched) {
		start = len(matched)
	}
	end := start + p.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeRequestRepo) Update(ctx context.Context, id string, upd repository.RequestUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return apperrors.New(apperrors.KindNotFound, "blood request not found")
	}
	if upd.Recipient != nil {
		doc.Recipient = *upd.Recipient
	}
	if upd.DonationInfo != nil {
		doc.DonationInfo = *upd.DonationInfo
	}
	if upd.Location != nil {
		doc.Location = *upd.Location
	}
	if upd.Donor != nil {
		doc.Donor = *upd.Donor
	}
	if upd.Status != nil {
		doc.Status = *upd.Status
	}
	if upd.DonationStatus != nil {
		doc.DonationStatus = *upd.DonationStatus
	}
	if upd.UpdatedAt.IsZero() {
		upd.UpdatedAt = time.Now()
	}
	doc.UpdatedAt = upd.UpdatedAt
	return nil
}

func (f *fakeRequestRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[id]; !ok {
		return apperrors.New(apperrors.KindNotFound, "blood request not found")
	}
	delete(f.docs, id)
	return nil
}
