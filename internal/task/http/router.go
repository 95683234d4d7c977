package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	commonerrors "github.com/AlibekovAA/tasklist/backend/internal/common/errors"
	commonhttp "github.com/AlibekovAA/tasklist/backend/internal/common/http"
	"github.com/AlibekovAA/tasklist/backend/internal/common/jwtverify"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
	"github.com/AlibekovAA/tasklist/backend/internal/task/domain"
	"github.com/AlibekovAA/tasklist/backend/internal/task/service"
	userdomain "github.com/AlibekovAA/tasklist/backend/internal/user/domain"
)

type taskRequest struct {
	Text string `json:"text"`
}

type taskResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(t domain.Task) taskResponse {
	return taskResponse{
		ID:        string(t.ID),
		OwnerID:   string(t.OwnerID),
		Text:      t.Text,
		CreatedAt: t.CreatedAt,
	}
}

type Handler struct {
	tasks *service.TaskService
	log   *logger.Logger
}

func NewHandler(tasks *service.TaskService, log *logger.Logger) *Handler {
	return &Handler{tasks: tasks, log: log}
}

// Routes mounts the task endpoints behind guard.
func (h *Handler) Routes(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Route("/tasks", func(r chi.Router) {
		r.Use(guard)
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

// requestContext detaches the handler from client cancellation: once started,
// a request runs to completion.
func requestContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (h *Handler) owner(w http.ResponseWriter, r *http.Request) (userdomain.ID, bool) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok || claims.UserID == "" {
		commonhttp.HandleError(w, r, commonerrors.ErrMissingToken, h.log)
		return "", false
	}
	return userdomain.ID(claims.UserID), true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	q := domain.ListQuery{
		Filter: r.URL.Query().Get("q"),
		Sort:   domain.ParseSortMode(r.URL.Query().Get("sort")),
	}

	tasks, err := h.tasks.List(requestContext(r), owner, q)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toResponse(t))
	}
	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req taskRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	task, err := h.tasks.Create(requestContext(r), owner, req.Text)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toResponse(task))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req taskRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	task, err := h.tasks.Update(requestContext(r), owner, domain.ID(chi.URLParam(r, "id")), req.Text)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toResponse(task))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	if err := h.tasks.Delete(requestContext(r), owner, domain.ID(chi.URLParam(r, "id"))); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteSuccess(w)
}
