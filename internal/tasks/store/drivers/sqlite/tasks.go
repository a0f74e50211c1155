package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
)

type tasksRepo struct {
	db dbtx
}

const taskColumns = `id, owner_id, title, description, completed, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (domain.Task, error) {
	var (
		t                domain.Task
		created, updated int64
	)
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Completed, &created, &updated); err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	t.CreatedAt = fromUnix(created)
	t.UpdatedAt = fromUnix(updated)
	return t, nil
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, t.Title, t.Description, t.Completed, toUnix(t.CreatedAt), toUnix(t.UpdatedAt),
	)
	return mapUnique(err)
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	return scanTask(r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
}

func (r *tasksRepo) ListTasksByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE owner_id = ? ORDER BY created_at, id`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *tasksRepo) MarkTaskCompleted(ctx context.Context, id string, at time.Time) error {
	return affectedOrNotFound(r.db.ExecContext(ctx,
		`UPDATE tasks SET completed = 1, updated_at = ? WHERE id = ?`,
		toUnix(at), id,
	))
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	return affectedOrNotFound(r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id))
}
