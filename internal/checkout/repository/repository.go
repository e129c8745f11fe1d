package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"

	"github.com/Maeva109/FTHEARTIZONE/internal/domain"
)

var ErrSessionNotFound = errors.New("checkout session not found")

// SessionRepository persists checkout sessions so email and payment method
// survive a reload mid-flow.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.CheckoutSession) error
	Get(ctx context.Context, id string) (*domain.CheckoutSession, error)
	Update(ctx context.Context, session *domain.CheckoutSession) error
	Close() error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) Create(ctx context.Context, session *domain.CheckoutSession) error {
	query := `
		INSERT INTO checkout_sessions
			(id, user_id, email, payment_method, step,
			 ship_name, ship_address, ship_city, ship_phone,
			 total, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.Email,
		string(session.PaymentMethod),
		int(session.Step),
		session.Shipping.Name,
		session.Shipping.Address,
		session.Shipping.City,
		session.Shipping.Phone,
		session.Total,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert checkout session: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	query := `
		SELECT id, user_id, email, payment_method, step,
		       ship_name, ship_address, ship_city, ship_phone,
		       total, created_at, updated_at
		FROM checkout_sessions
		WHERE id = ?
	`
	session := &domain.CheckoutSession{}
	var method string
	var step int
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.Email,
		&method,
		&step,
		&session.Shipping.Name,
		&session.Shipping.Address,
		&session.Shipping.City,
		&session.Shipping.Phone,
		&session.Total,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query checkout session: %w", err)
	}

	session.PaymentMethod = domain.PaymentMethod(method)
	session.Step = domain.CheckoutStep(step)
	return session, nil
}

func (r *Repository) Update(ctx context.Context, session *domain.CheckoutSession) error {
	query := `
		UPDATE checkout_sessions
		SET email = ?, payment_method = ?, step = ?,
		    ship_name = ?, ship_address = ?, ship_city = ?, ship_phone = ?,
		    total = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		session.Email,
		string(session.PaymentMethod),
		int(session.Step),
		session.Shipping.Name,
		session.Shipping.Address,
		session.Shipping.City,
		session.Shipping.Phone,
		session.Total,
		session.UpdatedAt,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update checkout session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
