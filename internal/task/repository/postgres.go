package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/tasklist/backend/internal/common/crypto"
	"github.com/AlibekovAA/tasklist/backend/internal/common/db"
	"github.com/AlibekovAA/tasklist/backend/internal/task/domain"
	userdomain "github.com/AlibekovAA/tasklist/backend/internal/user/domain"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, task domain.Task) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO tasks (id, owner_id, text, created_at) VALUES ($1, $2, $3, $4)`,
		string(task.ID),
		string(task.OwnerID),
		task.Text,
		task.CreatedAt,
	)
	return db.HandleExecError(err, "create task", db.TableTasks, start)
}

func (r *PgRepository) List(ctx context.Context, owner userdomain.ID, filter string) ([]domain.Task, error) {
	if !crypto.IsUUID(string(owner)) {
		return []domain.Task{}, nil
	}

	start := time.Now()
	query := `SELECT id, owner_id, text, created_at FROM tasks WHERE owner_id = $1`
	args := []any{string(owner)}
	if filter != "" {
		query += ` AND text ILIKE $2 ESCAPE '\'`
		args = append(args, "%"+escapeLike(filter)+"%")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err := db.HandleQueryError(err, ErrTaskNotFound, "list tasks", db.TableTasks, start); err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Text, &t.CreatedAt); err != nil {
			return nil, db.HandleExecError(err, "scan task", db.TableTasks, start)
		}
		t.CreatedAt = t.CreatedAt.UTC()
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleExecError(err, "iterate tasks", db.TableTasks, start)
	}

	return tasks, nil
}

func (r *PgRepository) UpdateText(ctx context.Context, owner userdomain.ID, id domain.ID, text string) (domain.Task, error) {
	if !crypto.IsUUID(string(id)) || !crypto.IsUUID(string(owner)) {
		return domain.Task{}, ErrTaskNotFound
	}

	start := time.Now()
	var t domain.Task
	err := r.pool.QueryRow(
		ctx,
		`UPDATE tasks SET text = $3 WHERE id = $1 AND owner_id = $2
		 RETURNING id, owner_id, text, created_at`,
		string(id),
		string(owner),
		text,
	).Scan(&t.ID, &t.OwnerID, &t.Text, &t.CreatedAt)
	if err := db.HandleQueryError(err, ErrTaskNotFound, "update task", db.TableTasks, start); err != nil {
		return domain.Task{}, err
	}

	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}

func (r *PgRepository) Delete(ctx context.Context, owner userdomain.ID, id domain.ID) error {
	if !crypto.IsUUID(string(id)) || !crypto.IsUUID(string(owner)) {
		return ErrTaskNotFound
	}

	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`DELETE FROM tasks WHERE id = $1 AND owner_id = $2`,
		string(id),
		string(owner),
	)
	if err := db.HandleExecError(err, "delete task", db.TableTasks, start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
