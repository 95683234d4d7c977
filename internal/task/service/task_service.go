package service

import (
	"context"
	"errors"

	"github.com/AlibekovAA/tasklist/backend/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/tasklist/backend/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/tasklist/backend/internal/common/errors"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
	"github.com/AlibekovAA/tasklist/backend/internal/task/domain"
	"github.com/AlibekovAA/tasklist/backend/internal/task/query"
	taskrepo "github.com/AlibekovAA/tasklist/backend/internal/task/repository"
	userdomain "github.com/AlibekovAA/tasklist/backend/internal/user/domain"
)

type TaskService struct {
	repo        taskrepo.Repository
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewTaskService(
	repo taskrepo.Repository,
	idGenerator commoncrypto.IDGenerator,
	clock clock.Clock,
	log *logger.Logger,
) *TaskService {
	return &TaskService{
		repo:        repo,
		idGenerator: idGenerator,
		clock:       clock,
		log:         log,
	}
}

func (s *TaskService) List(ctx context.Context, owner userdomain.ID, q domain.ListQuery) ([]domain.Task, error) {
	tasks, err := s.repo.List(ctx, owner, q.Filter)
	if err != nil {
		recordOperation("list", "error")
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(owner),
			"action":  "task_list_failed",
		}).Errorf("list tasks failed: %v", err)
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}

	// The store already applied the filter and recency order.
	query.Sort(tasks, q.Sort)

	recordOperation("list", "success")
	observeListSize(len(tasks))
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(owner),
		"action":  "task_list_success",
		"count":   len(tasks),
		"sort":    string(q.Sort),
	}).Debug("tasks listed")

	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, owner userdomain.ID, text string) (domain.Task, error) {
	if text == "" {
		recordOperation("create", "invalid")
		return domain.Task{}, ErrTextRequired
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		recordOperation("create", "error")
		return domain.Task{}, commonerrors.NewInternalError("ID_GENERATION_FAILED", "Server error", err)
	}

	task := domain.Task{
		ID:        domain.ID(id),
		OwnerID:   owner,
		Text:      text,
		CreatedAt: s.clock.Now().UTC(),
	}

	if err := s.repo.Create(ctx, task); err != nil {
		recordOperation("create", "error")
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(owner),
			"action":  "task_create_failed",
		}).Errorf("create task failed: %v", err)
		return domain.Task{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	recordOperation("create", "success")
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(owner),
		"task_id": string(task.ID),
		"action":  "task_create_success",
	}).Info("task created")

	return task, nil
}

func (s *TaskService) Update(ctx context.Context, owner userdomain.ID, id domain.ID, text string) (domain.Task, error) {
	if text == "" {
		recordOperation("update", "invalid")
		return domain.Task{}, ErrTextRequired
	}

	task, err := s.repo.UpdateText(ctx, owner, id, text)
	if err != nil {
		return domain.Task{}, s.mapRepoError(ctx, "update", owner, id, err)
	}

	recordOperation("update", "success")
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(owner),
		"task_id": string(id),
		"action":  "task_update_success",
	}).Info("task updated")

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, owner userdomain.ID, id domain.ID) error {
	if err := s.repo.Delete(ctx, owner, id); err != nil {
		return s.mapRepoError(ctx, "delete", owner, id, err)
	}

	recordOperation("delete", "success")
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(owner),
		"task_id": string(id),
		"action":  "task_delete_success",
	}).Info("task deleted")

	return nil
}

func (s *TaskService) mapRepoError(ctx context.Context, operation string, owner userdomain.ID, id domain.ID, err error) error {
	fields := logger.Fields{
		"user_id": string(owner),
		"task_id": string(id),
		"action":  "task_" + operation + "_failed",
	}

	if errors.Is(err, taskrepo.ErrTaskNotFound) {
		recordOperation(operation, "not_found")
		s.log.WithFields(ctx, fields).Warn("task not found")
		return ErrTaskNotFound
	}

	recordOperation(operation, "error")
	s.log.WithFields(ctx, fields).Errorf("%s task failed: %v", operation, err)
	return commonerrors.ErrDatabaseError.WithCause(err)
}
