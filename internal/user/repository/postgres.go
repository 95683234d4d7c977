package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/tasklist/backend/internal/common/db"
	"github.com/AlibekovAA/tasklist/backend/internal/user/domain"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, username, password, password_scheme, created_at) VALUES ($1, $2, $3, $4, $5)`,
		string(user.ID),
		user.Username,
		user.Password.Value(),
		user.Password.Scheme(),
		user.CreatedAt,
	)
	if db.IsUniqueViolation(err) {
		db.MeasureQueryDuration("create user", db.TableUsers, start)
		return ErrUsernameAlreadyExists
	}
	return db.HandleExecError(err, "create user", db.TableUsers, start)
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, "find user by username",
		`SELECT id, username, password, password_scheme, created_at FROM users WHERE username = $1`,
		username,
	)
}

func (r *PgRepository) findOne(ctx context.Context, operation, query string, arg string) (domain.User, error) {
	start := time.Now()

	var (
		user     domain.User
		password string
		scheme   sql.NullString
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(&user.ID, &user.Username, &password, &scheme, &user.CreatedAt)
	if err := db.HandleQueryError(err, ErrUserNotFound, operation, db.TableUsers, start); err != nil {
		return domain.User{}, err
	}

	user.Password = domain.PasswordFromStorage(scheme.String, password)
	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}

func (r *PgRepository) UpdatePassword(ctx context.Context, id domain.ID, password domain.Password) error {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE users SET password = $2, password_scheme = $3 WHERE id::text = $1`,
		string(id),
		password.Value(),
		password.Scheme(),
	)
	if err := db.HandleExecError(err, "update user password", db.TableUsers, start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
