package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/idx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
	"github.com/aussiebroadwan/tasks/pkg/validx"
)

// TaskService is the only way to reach tasks. Every call is made on behalf
// of a caller and only ever touches that caller's rows.
type TaskService struct {
	Store store.Store
	Clock Clock
}

// CreateTask stores a new, incomplete task owned by ownerID.
func (s *TaskService) CreateTask(ctx context.Context, ownerID, title, description string) (domain.Task, error) {
	if ownerID == "" {
		return domain.Task{}, ErrUnauthenticated
	}

	title = strings.TrimSpace(title)
	if reason := validx.Required()(title); reason != "" {
		return domain.Task{}, invalid("title", reason)
	}

	now := s.Clock.now()
	task := domain.Task{
		ID:          idx.NewAt(now).String(),
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Tasks().CreateTask(ctx, task)
	}); err != nil {
		return domain.Task{}, infra("create task", err)
	}

	slogx.FromContext(ctx).Info("task created", slog.String("task_id", task.ID))
	return task, nil
}

// ListTasks returns ownerID's tasks in the order they were created.
func (s *TaskService) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	tasks, err := s.Store.Tasks().ListTasksByOwner(ctx, ownerID)
	if err != nil {
		return nil, infra("list tasks", err)
	}
	return tasks, nil
}

// CompleteTask marks the caller's task as done. Completing a done task
// again succeeds.
func (s *TaskService) CompleteTask(ctx context.Context, taskID, callerID string) (domain.Task, error) {
	now := s.Clock.now()

	var task domain.Task
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		t, err := ownedTask(ctx, tx, taskID, callerID)
		if err != nil {
			return err
		}
		if err := tx.Tasks().MarkTaskCompleted(ctx, t.ID, now); err != nil {
			return err
		}
		t.Completed = true
		t.UpdatedAt = now
		task = t
		return nil
	})
	if err != nil {
		return domain.Task{}, infra("complete task", err)
	}

	slogx.FromContext(ctx).Info("task completed", slog.String("task_id", taskID))
	return task, nil
}

// DeleteTask permanently removes the caller's task.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, callerID string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := ownedTask(ctx, tx, taskID, callerID); err != nil {
			return err
		}
		return tx.Tasks().DeleteTask(ctx, taskID)
	})
	if err != nil {
		return infra("delete task", err)
	}

	slogx.FromContext(ctx).Info("task deleted", slog.String("task_id", taskID))
	return nil
}

// ownedTask loads taskID and checks it belongs to callerID, before anything
// is written.
func ownedTask(ctx context.Context, tx store.Tx, taskID, callerID string) (domain.Task, error) {
	if callerID == "" {
		return domain.Task{}, ErrUnauthenticated
	}
	if !idx.Valid(taskID) {
		return domain.Task{}, ErrNotFound
	}

	t, err := tx.Tasks().GetTaskByID(ctx, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Task{}, ErrNotFound
	}
	if err != nil {
		return domain.Task{}, err
	}

	if t.OwnerID != callerID {
		slogx.FromContext(ctx).Warn("task ownership violation",
			slog.String("task_id", taskID),
			slog.String("owner_id", t.OwnerID),
		)
		return domain.Task{}, ErrForbidden
	}
	return t, nil
}
