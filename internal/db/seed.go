package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"kpiboard/internal/auth"
	"kpiboard/internal/domain/directory"
	"kpiboard/internal/platform/config"
)

// Seed ensures the HR department and the bootstrap admin account exist. Both
// are idempotent; reruns are no-ops.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureDepartment(ctx, pool, directory.HRDepartmentName); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.SeedAdminEmail) == "" {
		return nil
	}
	return ensureAdminUser(ctx, pool, cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureDepartment(ctx context.Context, pool *pgxpool.Pool, name string) error {
	_, err := pool.Exec(ctx, "INSERT INTO departments (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name)
	return err
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, name, email, password string) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE lower(email) = lower($1)", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (name, email, role, department, password_hash)
    VALUES ($1, $2, $3, $4, $5)
  `, name, email, directory.RoleAdmin, directory.HRDepartmentName, hash)
	return err
}
