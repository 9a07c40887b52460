package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/internal/domain/repository"
	"bloodlink-service/internal/usecase"
	"bloodlink-service/pkg/apperrors"
	"bloodlink-service/pkg/logger"
	"bloodlink-service/pkg/pagination"

	"github.com/go-chi/chi/v5"
)

// Handler holds all dependencies for HTTP handlers. Blood requests go
// through the lifecycle service; messages, blogs and geo lookups are
// pass-through persistence and talk to their repositories directly.
type Handler struct {
	requests *usecase.RequestService
	users    *usecase.UserService
	messages repository.MessageRepository
	blogs    repository.BlogRepository
	geo      repository.GeoRepository
	logger   logger.Logger
}

// NewHandler creates a new handler
func NewHandler(
	requests *usecase.RequestService,
	users *usecase.UserService,
	messages repository.MessageRepository,
	blogs repository.BlogRepository,
	geo repository.GeoRepository,
	logger logger.Logger,
) *Handler {
	return &Handler{
		requests: requests,
		users:    users,
		messages: messages,
		blogs:    blogs,
		geo:      geo,
		logger:   logger,
	}
}

// ---- blood requests ----

// CreateBloodRequest handles POST /blood-requests
func (h *Handler) CreateBloodRequest(w http.ResponseWriter, r *http.Request) {
	var body CreateRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperrors.New(apperrors.KindValidation, "invalid request body"))
		return
	}
	if err := body.Validate(); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.requests.Create(r.Context(), body.toEntity())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, "blood request created", CreatedResponse{InsertedID: id}, nil)
}

// ListBloodRequests handles GET /blood-requests
func (h *Handler) ListBloodRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	items, meta, err := h.requests.List(r.Context(), q.Get("email"), q.Get("role"), q.Get("status"), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "blood requests retrieved", items, &meta)
}

// GetBloodRequest handles GET /blood-requests/{id}
func (h *Handler) GetBloodRequest(w http.ResponseWriter, r *http.Request) {
	req, err := h.requests.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "blood request retrieved", req, nil)
}

// ApplyBloodRequestAction handles PATCH /blood-requests/{id}
func (h *Handler) ApplyBloodRequestAction(w http.ResponseWriter, r *http.Request) {
	var body ActionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperrors.New(apperrors.KindValidation, "invalid request body"))
		return
	}
	if err := body.Validate(); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.requests.ApplyAction(r.Context(), chi.URLParam(r, "id"),
		usecase.Action(body.Action), body.actor(), body.payload())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "blood request updated", updated, nil)
}

// EditBloodRequest handles PUT /blood-requests/{id}
func (h *Handler) EditBloodRequest(w http.ResponseWriter, r *http.Request) {
	var body EditBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperrors.New(apperrors.KindValidation, "invalid request body"))
		return
	}

	updated, err := h.requests.UpdateEditableFields(r.Context(), chi.URLParam(r, "id"), body.Email, usecase.EditableFields{
		Recipient:    body.Recipient,
		DonationInfo: body.DonationInfo,
		Location:     body.Location,
		Status:       body.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "blood request updated", updated, nil)
}

// DeleteBloodRequest handles DELETE /blood-requests/{id}
func (h *Handler) DeleteBloodRequest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	email := q.Get("email")
	if email == "" {
		writeError(w, apperrors.New(apperrors.KindValidation, "email is required"))
		return
	}

	actor := entity.Actor{Email: email, Role: q.Get("role")}
	if err := h.requests.Delete(r.Context(), chi.URLParam(r, "id"), actor); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "blood request deleted", nil, nil)
}

// ---- users ----

// RegisterUser handles POST /users
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var user entity.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, apperrors.New(apperrors.KindValidation, "invalid request body"))
		return
	}

	created, err := h.users.Register(r.Context(), &user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, "user registered", created, nil)
}

// GetUser handles GET /users/{email}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "user retrieved", user, nil)
}

// UpdateUser handles PATCH /users/{email}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var user entity.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, apperrors.New(apperrors.KindValidation, "invalid request body"))
		return
	}

	updated, err := h.users.Update(r.Context(), chi.URLParam(r, "email"), &user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "user updated", updated, nil)
}

// ListUsers handles GET /users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	users, meta, err := h.users.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "users retrieved", users, &meta)
}

// ---- messages ----

// CreateMessage handles POST /messages
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var msg entity.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, apperrors.New(apperrors.KindValidation, "invalid request body"))
		return
	}
	if msg.Email == "" || msg.Content == "" {
		writeError(w, apperrors.New(apperrors.KindValidation, "email and content are required"))
		return
	}

	msg.ID = ""
	msg.CreatedAt = time.Now()
	id, err := h.messages.Save(r.Context(), &msg)
	if err != nil {
		writeError(w, apperrors.Wrap(err, "failed to save message"))
		return
	}

	writeJSON(w, http.StatusCreated, "message stored", CreatedResponse{InsertedID: id}, nil)
}

// ListMessages handles GET /messages
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	p := pagination.Normalize(page, limit)
	messages, total, err := h.messages.List(r.Context(), p)
	if err != nil {
		writeError(w, apperrors.Wrap(err, "failed to list messages"))
		return
	}

	meta := pagination.NewMeta(p, total)
	writeJSON(w, http.StatusOK, "messages retrieved", messages, &meta)
}

// ---- blog ----

// CreateBlogPost handles POST /blogs
func (h *Handler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var post entity.BlogPost
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeError(w, apperrors.New(apperrors.KindValidation, "invalid request body"))
		return
	}
	if post.Title == "" || post.Content == "" {
		writeError(w, apperrors.New(apperrors.KindValidation, "title and content are required"))
		return
	}

	post.ID = ""
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	id, err := h.blogs.Save(r.Context(), &post)
	if err != nil {
		writeError(w, apperrors.Wrap(err, "failed to save blog post"))
		return
	}

	writeJSON(w, http.StatusCreated, "blog post created", CreatedResponse{InsertedID: id}, nil)
}

// ListBlogPosts handles GET /blogs
func (h *Handler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	p := pagination.Normalize(page, limit)
	posts, total, err := h.blogs.List(r.Context(), p)
	if err != nil {
		writeError(w, apperrors.Wrap(err, "failed to list blog posts"))
		return
	}

	meta := pagination.NewMeta(p, total)
	writeJSON(w, http.StatusOK, "blog posts retrieved", posts, &meta)
}

// GetBlogPost handles GET /blogs/{id}
func (h *Handler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.blogs.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperrors.Wrap(err, "failed to load blog post"))
		return
	}
	if post == nil {
		writeError(w, apperrors.New(apperrors.KindNotFound, "blog post not found"))
		return
	}

	writeJSON(w, http.StatusOK, "blog post retrieved", post, nil)
}

// DeleteBlogPost handles DELETE /blogs/{id}
func (h *Handler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	if err := h.blogs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "blog post deleted", nil, nil)
}

// ---- geo reference ----

// ListDivisions handles GET /locations/divisions
func (h *Handler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	divisions, err := h.geo.ListDivisions(r.Context())
	if err != nil {
		writeError(w, apperrors.Wrap(err, "failed to list divisions"))
		return
	}

	writeJSON(w, http.StatusOK, "divisions retrieved", divisions, nil)
}

// ListDistricts handles GET /locations/districts?division=
func (h *Handler) ListDistricts(w http.ResponseWriter, r *http.Request) {
	division := r.URL.Query().Get("division")
	if division == "" {
		writeError(w, apperrors.New(apperrors.KindValidation, "division is required"))
		return
	}

	districts, err := h.geo.ListDistricts(r.Context(), division)
	if err != nil {
		writeError(w, apperrors.Wrap(err, "failed to list districts"))
		return
	}

	writeJSON(w, http.StatusOK, "districts retrieved", districts, nil)
}

// ListUpazilas handles GET /locations/upazilas?district=
func (h *Handler) ListUpazilas(w http.ResponseWriter, r *http.Request) {
	district := r.URL.Query().Get("district")
	if district == "" {
		writeError(w, apperrors.New(apperrors.KindValidation, "district is required"))
		return
	}

	upazilas, err := h.geo.ListUpazilas(r.Context(), district)
	if err != nil {
		writeError(w, apperrors.Wrap(err, "failed to list upazilas"))
		return
	}

	writeJSON(w, http.StatusOK, "upazilas retrieved", upazilas, nil)
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "healthy", nil, nil)
}
