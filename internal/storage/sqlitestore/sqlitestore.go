package sqlitestore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"

	"repairdesk/internal/domain/accounts"
	"repairdesk/internal/domain/services"
	"repairdesk/internal/storage"
	"repairdesk/internal/storage/dbmodels"
)

//go:embed migrations
var migrationsFS embed.FS

var _ storage.Storage = (*Storage)(nil)

// Storage keeps accounts and services in two independent SQLite files,
// the way the desktop deployments lay them out on disk.
type Storage struct {
	accountsDB *sql.DB
	servicesDB *sql.DB
}

type Config struct {
	busyTimeout time.Duration
}

type Option func(c *Config)

func WithBusyTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.busyTimeout = timeout
	}
}

func NewStorage(accountsPath, servicesPath string, opts ...Option) (*Storage, error) {
	cfg := &Config{
		busyTimeout: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	accountsDB, err := openDB(accountsPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("openDB: %w", err)
	}

	servicesDB, err := openDB(servicesPath, cfg)
	if err != nil {
		accountsDB.Close() //nolint:errcheck

		return nil, fmt.Errorf("openDB: %w", err)
	}

	return &Storage{
		accountsDB: accountsDB,
		servicesDB: servicesDB,
	}, nil
}

func openDB(path string, cfg *Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		path, cfg.busyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	// Single writer: SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)

	return db, nil
}

// Bootstrap applies the schema migrations for both stores.
func (s *Storage) Bootstrap(ctx context.Context) error {
	if err := migrate(ctx, s.accountsDB, "migrations/accounts"); err != nil {
		return fmt.Errorf("migrate accounts: %w", err)
	}

	if err := migrate(ctx, s.servicesDB, "migrations/services"); err != nil {
		return fmt.Errorf("migrate services: %w", err)
	}

	return nil
}

func migrate(ctx context.Context, db *sql.DB, dir string) error {
	fsys, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("fs.Sub: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("goose.NewProvider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("provider.Up: %w", err)
	}

	return nil
}

func (s *Storage) Close() error {
	accErr := s.accountsDB.Close()
	svcErr := s.servicesDB.Close()

	if err := errors.Join(accErr, svcErr); err != nil {
		return fmt.Errorf("db.Close: %w", err)
	}

	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	if err := s.accountsDB.PingContext(ctx); err != nil {
		return fmt.Errorf("accountsDB.PingContext: %w", err)
	}

	if err := s.servicesDB.PingContext(ctx); err != nil {
		return fmt.Errorf("servicesDB.PingContext: %w", err)
	}

	return nil
}

// isUniqueViolation checks if error is a primary-key or unique-constraint
// violation.
func isUniqueViolation(err error) bool {
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		switch sqlErr.Code() {
		case sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlitelib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}

	return false
}

func (s *Storage) CreateAccount(ctx context.Context, acc *accounts.Account) error {
	query := `INSERT INTO accounts (login, password_hash, total_spent, membership_tier) VALUES (?, ?, ?, ?)`

	if _, err := s.accountsDB.ExecContext(ctx, query,
		acc.Login(), acc.PasswordHash(), acc.TotalSpent().InexactFloat64(), acc.Tier().String(),
	); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAccountAlreadyExists
		}

		return fmt.Errorf("db.ExecContext: %w", err)
	}

	return nil
}

func (s *Storage) GetAccount(ctx context.Context, login string) (*accounts.Account, error) {
	dbAccount := new(dbmodels.Account)

	query := `SELECT login, password_hash, total_spent, membership_tier FROM accounts WHERE login = ?`

	row := s.accountsDB.QueryRowContext(ctx, query, login)
	if err := row.Scan(
		&dbAccount.Login, &dbAccount.PasswordHash, &dbAccount.TotalSpent, &dbAccount.Tier,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrAccountNotFound
		}

		return nil, fmt.Errorf("db.QueryRowContext: %w", err)
	}

	acc, err := accounts.RestoreAccount(dbAccount.Login, dbAccount.PasswordHash, decimal.NewFromFloat(dbAccount.TotalSpent))
	if err != nil {
		return nil, fmt.Errorf("accounts.RestoreAccount: %w", err)
	}

	return acc, nil
}

func (s *Storage) ApplySpend(ctx context.Context, login string, amount decimal.Decimal) (*accounts.Account, error) {
	tx, err := s.accountsDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("db.BeginTx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	dbAccount := new(dbmodels.Account)

	row := tx.QueryRowContext(ctx,
		`SELECT login, password_hash, total_spent FROM accounts WHERE login = ?`, login)

	if err := row.Scan(&dbAccount.Login, &dbAccount.PasswordHash, &dbAccount.TotalSpent); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrAccountNotFound
		}

		return nil, fmt.Errorf("tx.QueryRowContext: %w", err)
	}

	acc, err := accounts.RestoreAccount(dbAccount.Login, dbAccount.PasswordHash, decimal.NewFromFloat(dbAccount.TotalSpent))
	if err != nil {
		return nil, fmt.Errorf("accounts.RestoreAccount: %w", err)
	}

	if err := acc.AddSpent(amount); err != nil {
		return nil, err
	}

	// Spend and tier land together or not at all.
	if _, err := tx.ExecContext(ctx,
		`UPDATE accounts SET total_spent = ?, membership_tier = ? WHERE login = ?`,
		acc.TotalSpent().InexactFloat64(), acc.Tier().String(), acc.Login(),
	); err != nil {
		return nil, fmt.Errorf("tx.ExecContext: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("tx.Commit: %w", err)
	}

	return acc, nil
}

func (s *Storage) CreateService(ctx context.Context, svc *services.Service) error {
	query := `INSERT INTO services (id, kind, description, base_cost) VALUES (?, ?, ?, ?)`

	if _, err := s.servicesDB.ExecContext(ctx, query,
		svc.ID(), svc.Kind().String(), svc.Description(), svc.BaseCost().InexactFloat64(),
	); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrServiceAlreadyExists
		}

		return fmt.Errorf("db.ExecContext: %w", err)
	}

	return nil
}

func (s *Storage) GetService(ctx context.Context, id string) (*services.Service, error) {
	dbService := new(dbmodels.Service)

	query := `SELECT id, kind, description, base_cost FROM services WHERE id = ?`

	row := s.servicesDB.QueryRowContext(ctx, query, id)
	if err := row.Scan(
		&dbService.ID, &dbService.Kind, &dbService.Description, &dbService.BaseCost,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrServiceNotFound
		}

		return nil, fmt.Errorf("db.QueryRowContext: %w", err)
	}

	svc, err := services.Restore(dbService.ID, dbService.Kind, dbService.Description, decimal.NewFromFloat(dbService.BaseCost))
	if err != nil {
		return nil, fmt.Errorf("services.Restore: %w", err)
	}

	return svc, nil
}

func (s *Storage) ListServices(ctx context.Context) ([]*services.Service, error) {
	query := `SELECT id, kind, description, base_cost FROM services ORDER BY rowid`

	rows, err := s.servicesDB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db.QueryContext: %w", err)
	}

	defer rows.Close()

	svcs := make([]*services.Service, 0)

	for rows.Next() {
		dbService := new(dbmodels.Service)

		if err := rows.Scan(
			&dbService.ID, &dbService.Kind, &dbService.Description, &dbService.BaseCost,
		); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		svc, err := services.Restore(dbService.ID, dbService.Kind, dbService.Description, decimal.NewFromFloat(dbService.BaseCost))
		if err != nil {
			return nil, fmt.Errorf("services.Restore: %w", err)
		}

		svcs = append(svcs, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return svcs, nil
}

func (s *Storage) CountServices(ctx context.Context) (int, error) {
	var count int

	row := s.servicesDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM services`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("db.QueryRowContext: %w", err)
	}

	return count, nil
}
