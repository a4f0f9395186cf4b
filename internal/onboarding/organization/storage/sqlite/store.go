// Package sqlite provides a SQLite-backed organization store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/onboarding/internal/onboarding/organization"
	"github.com/louisbranch/onboarding/internal/onboarding/organization/storage/sqlite/migrations"
	"github.com/louisbranch/onboarding/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store persists organizations and their projects in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite organization store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetOrganization loads one organization with projects in stored order.
func (s *Store) GetOrganization(ctx context.Context, slug string) (organization.Organization, error) {
	if err := ctx.Err(); err != nil {
		return organization.Organization{}, err
	}
	if s == nil || s.sqlDB == nil {
		return organization.Organization{}, fmt.Errorf("storage is not configured")
	}
	slug = organization.NormalizeSlug(slug)

	org := organization.Organization{Slug: slug}
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT name FROM organizations WHERE slug = ?`,
		slug,
	).Scan(&org.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return organization.Organization{}, fmt.Errorf("%w: %s", organization.ErrNotFound, slug)
	}
	if err != nil {
		return organization.Organization{}, fmt.Errorf("get organization %s: %w", slug, err)
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT slug, name FROM projects WHERE organization_slug = ? ORDER BY position`,
		slug,
	)
	if err != nil {
		return organization.Organization{}, fmt.Errorf("list projects %s: %w", slug, err)
	}
	defer rows.Close()

	org.Projects = []organization.Project{}
	for rows.Next() {
		var project organization.Project
		if err := rows.Scan(&project.Slug, &project.Name); err != nil {
			return organization.Organization{}, fmt.Errorf("scan project: %w", err)
		}
		org.Projects = append(org.Projects, project)
	}
	if err := rows.Err(); err != nil {
		return organization.Organization{}, fmt.Errorf("iterate projects: %w", err)
	}
	return org, nil
}

// PutOrganization replaces an organization and all of its projects atomically.
func (s *Store) PutOrganization(ctx context.Context, org organization.Organization) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	normalized, err := organization.Normalize(org)
	if err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put organization: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO organizations (slug, name, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at`,
		normalized.Slug,
		normalized.Name,
		time.Now().UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("upsert organization %s: %w", normalized.Slug, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM projects WHERE organization_slug = ?`,
		normalized.Slug,
	); err != nil {
		return fmt.Errorf("clear projects %s: %w", normalized.Slug, err)
	}
	for position, project := range normalized.Projects {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO projects (organization_slug, slug, name, position) VALUES (?, ?, ?, ?)`,
			normalized.Slug,
			project.Slug,
			project.Name,
			position,
		); err != nil {
			return fmt.Errorf("insert project %s/%s: %w", normalized.Slug, project.Slug, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put organization %s: %w", normalized.Slug, err)
	}
	return nil
}
