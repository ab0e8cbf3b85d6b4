package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/internal/repository/database"
)

var _ database.ProfileRepository = (*ProfileRepo)(nil)

const profileColumns = `id, COALESCE(full_name, ''), COALESCE(email, ''), role, COALESCE(hourly_rate, 0), created_at`

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

func (r *ProfileRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE role = $1 ORDER BY created_at`,
		string(role),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *p)
	}
	return results, rows.Err()
}

func (r *ProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET full_name = $1, email = NULLIF($2, ''), hourly_rate = $3 WHERE id = $4`,
		p.FullName, p.Email, p.HourlyRate, p.ID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *ProfileRepo) Rename(ctx context.Context, id uuid.UUID, fullName string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE profiles SET full_name = $1 WHERE id = $2`, fullName, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *ProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1 AND role = $2`, id, string(domain.RoleEmployee))
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func scanProfile(s scanner) (*domain.Profile, error) {
	var (
		p    domain.Profile
		role string
	)
	if err := s.Scan(&p.ID, &p.FullName, &p.Email, &role, &p.HourlyRate, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Role = domain.Role(role)
	return &p, nil
}
