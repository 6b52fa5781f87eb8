package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	authgate "github.com/MrEthical07/authgate"
)

//go:embed migrations/*.sql
var migrations embed.FS

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

// Store is the PostgreSQL-backed credential store.
type Store struct {
	db *sql.DB
}

// Open connects to PostgreSQL using the pgx stdlib driver and verifies the
// connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// RunMigrations applies the embedded schema migrations.
func (s *Store) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Create inserts a user record. A username collision returns
// [authgate.ErrDuplicateUsername].
func (s *Store) Create(ctx context.Context, input authgate.CreateUserInput) (authgate.UserRecord, error) {
	user := authgate.UserRecord{
		ID:           input.ID,
		Username:     input.Username,
		PasswordHash: input.PasswordHash,
		Admin:        input.Admin,
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (id, username, password_hash, is_admin)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		input.ID, input.Username, input.PasswordHash, input.Admin,
	).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return authgate.UserRecord{}, authgate.ErrDuplicateUsername
		}
		return authgate.UserRecord{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// FindByUsername returns the record for the username, or
// [authgate.ErrUserNotFound].
func (s *Store) FindByUsername(ctx context.Context, username string) (authgate.UserRecord, error) {
	return s.findOne(ctx,
		`SELECT id, username, password_hash, is_admin, created_at
		 FROM users WHERE username = $1`,
		username,
	)
}

// FindByID returns the record for the user id, or [authgate.ErrUserNotFound].
func (s *Store) FindByID(ctx context.Context, id string) (authgate.UserRecord, error) {
	return s.findOne(ctx,
		`SELECT id, username, password_hash, is_admin, created_at
		 FROM users WHERE id = $1`,
		id,
	)
}

func (s *Store) findOne(ctx context.Context, query string, arg any) (authgate.UserRecord, error) {
	var user authgate.UserRecord
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Admin,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return authgate.UserRecord{}, authgate.ErrUserNotFound
		}
		return authgate.UserRecord{}, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB exposes the underlying handle for host applications that need it.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
