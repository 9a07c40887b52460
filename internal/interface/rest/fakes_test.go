package rest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/internal/domain/repository"
	"bloodlink-service/internal/usecase"
	"bloodlink-service/pkg/apperrors"
	"bloodlink-service/pkg/logger"
	"bloodlink-service/pkg/metrics"
	"bloodlink-service/pkg/pagination"
)

var testMetrics = metrics.NewMetrics("bloodlink_rest_test")

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
func (l nopLogger) With(...interface{}) logger.Logger {
	return l
}

type memRequestRepo struct {
	mu   sync.Mutex
	docs map[string]*entity.BloodRequest
	seq  int
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{docs: make(map[string]*entity.BloodRequest)}
}

func (m *memRequestRepo) Insert(ctx context.Context, req *entity.BloodRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if req.ID == "" {
		req.ID = fmt.Sprintf("req-%d", m.seq)
	}
	clone := *req
	m.docs[req.ID] = &clone
	return req.ID, nil
}

func (m *memRequestRepo) FindByID(ctx context.Context, id string) (*entity.BloodRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, nil
	}
	clone := *doc
	return &clone, nil
}

func (m *memRequestRepo) FindActiveByPair(ctx context.Context, requesterEmail, donorEmail string) (*entity.BloodRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.docs {
		active := doc.Status.Current == entity.StatusPending || doc.Status.Current == entity.StatusInProgress
		if active && doc.Requester.Email == requesterEmail && doc.Donor.Email == donorEmail {
			clone := *doc
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *memRequestRepo) FindInProgressByDonor(ctx context.Context, donorEmail string) (*entity.BloodRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.docs {
		if doc.Status.Current == entity.StatusInProgress && doc.Donor.Email == donorEmail {
			clone := *doc
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *memRequestRepo) List(ctx context.Context, filter repository.RequestFilter, p pagination.Params) ([]*entity.BloodRequest, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []*entity.BloodRequest
	for _, doc := range m.docs {
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

func (m *memRequestRepo) Update(ctx context.Context, id string, upd repository.RequestUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
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
	doc.UpdatedAt = upd.UpdatedAt
	return nil
}

func (m *memRequestRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return apperrors.New(apperrors.KindNotFound, "blood request not found")
	}
	delete(m.docs, id)
	return nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (m *memUserRepo) Save(ctx context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *user
	m.users[user.Email] = &clone
	return nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (m *memUserRepo) UpdateByEmail(ctx context.Context, email string, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[email]; !ok {
		return apperrors.New(apperrors.KindNotFound, "user not found")
	}
	clone := *user
	m.users[email] = &clone
	return nil
}

func (m *memUserRepo) List(ctx context.Context, p pagination.Params) ([]*entity.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []*entity.User
	for _, u := range m.users {
		clone := *u
		users = append(users, &clone)
	}
	return users, int64(len(m.users)), nil
}

type memMessageRepo struct {
	mu       sync.Mutex
	messages []*entity.Message
}

func (m *memMessageRepo) Save(ctx context.Context, msg *entity.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = fmt.Sprintf("msg-%d", len(m.messages)+1)
	clone := *msg
	m.messages = append(m.messages, &clone)
	return msg.ID, nil
}

func (m *memMessageRepo) List(ctx context.Context, p pagination.Params) ([]*entity.Message, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.messages, int64(len(m.messages)), nil
}

type memBlogRepo struct {
	mu    sync.Mutex
	posts map[string]*entity.BlogPost
	seq   int
}

func newMemBlogRepo() *memBlogRepo {
	return &memBlogRepo{posts: make(map[string]*entity.BlogPost)}
}

func (m *memBlogRepo) Save(ctx context.Context, post *entity.BlogPost) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	post.ID = fmt.Sprintf("post-%d", m.seq)
	clone := *post
	m.posts[post.ID] = &clone
	return post.ID, nil
}

func (m *memBlogRepo) FindByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	clone := *post
	return &clone, nil
}

func (m *memBlogRepo) List(ctx context.Context, p pagination.Params) ([]*entity.BlogPost, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var posts []*entity.BlogPost
	for _, p := range m.posts {
		clone := *p
		posts = append(posts, &clone)
	}
	return posts, int64(len(posts)), nil
}

func (m *memBlogRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return apperrors.New(apperrors.KindNotFound, "blog post not found")
	}
	delete(m.posts, id)
	return nil
}

type memGeoRepo struct{}

func (memGeoRepo) ListDivisions(ctx context.Context) ([]entity.Division, error) {
	return []entity.Division{{ID: 1, Name: "Dhaka"}, {ID: 2, Name: "Chattogram"}}, nil
}

func (memGeoRepo) ListDistricts(ctx context.Context, division string) ([]entity.District, error) {
	return []entity.District{{ID: 1, Name: "Gazipur", DivisionID: 1}}, nil
}

func (memGeoRepo) ListUpazilas(ctx context.Context, district string) ([]entity.Upazila, error) {
	return []entity.Upazila{{ID: 1, Name: "Sreepur", DistrictID: 1}}, nil
}

func newTestHandler() (*Handler, *memRequestRepo) {
	repo := newMemRequestRepo()
	validator := usecase.NewMatchingValidator(repo)
	engine := usecase.NewTransitionEngine(repo, 10, nopLogger{})
	requests := usecase.NewRequestService(repo, validator, engine, 10, testMetrics, nopLogger{})
	users := usecase.NewUserService(newMemUserRepo(), nopLogger{})
	return NewHandler(requests, users, &memMessageRepo{}, newMemBlogRepo(), memGeoRepo{}, nopLogger{}), repo
}

func seedRequest(repo *memRequestRepo, requesterEmail, donorEmail, status string) string {
	req := &entity.BloodRequest{
		Requester:      entity.Person{ID: "r1", Name: "Requester", Email: requesterEmail},
		Recipient:      entity.Recipient{Name: "Patient", Hospital: "City Hospital"},
		DonationInfo:   entity.DonationInfo{BloodGroup: "A+"},
		Status:         entity.Status{Current: status, History: []entity.StatusEntry{{Status: status, ChangedAt: time.Now(), ChangedBy: entity.SystemActor()}}},
		DonationStatus: status,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if donorEmail != "" {
		req.Donor = entity.Person{ID: "d1", Name: "Donor", Email: donorEmail}
	}
	id, _ := repo.Insert(context.Background(), req)
	return id
}
