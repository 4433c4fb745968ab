package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
)

// PgxLockDateRepository implements portsrepo.LockDateRepositoryFacade using pgx.
type PgxLockDateRepository struct {
	BaseRepository
}

func newPgxLockDateRepository(pool *pgxpool.Pool) *PgxLockDateRepository {
	return &PgxLockDateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LockDateRepositoryFacade = (*PgxLockDateRepository)(nil)

func (r *PgxLockDateRepository) FindLockDateSetting(ctx context.Context, ownerID string) (*domain.LockDateSetting, error) {
	query := `SELECT owner_id, lock_date, fiscal_year_end, last_closed_period, updated_at, updated_by
		FROM lock_date_settings WHERE owner_id = $1`
	var m models.LockDateSetting
	err := r.Pool.QueryRow(ctx, query, ownerID).Scan(
		&m.OwnerID, &m.LockDate, &m.FiscalYearEnd, &m.LastClosedPeriod, &m.UpdatedAt, &m.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find lock date setting", err)
	}
	d := mapping.ToDomainLockDateSetting(m)
	return &d, nil
}

func (r *PgxLockDateRepository) SaveLockDateSetting(ctx context.Context, setting domain.LockDateSetting) error {
	m := mapping.ToModelLockDateSetting(setting)
	query := `INSERT INTO lock_date_settings (owner_id, lock_date, fiscal_year_end, last_closed_period, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (owner_id) DO UPDATE
		SET lock_date = EXCLUDED.lock_date,
		    fiscal_year_end = EXCLUDED.fiscal_year_end,
		    last_closed_period = EXCLUDED.last_closed_period,
		    updated_at = EXCLUDED.updated_at,
		    updated_by = EXCLUDED.updated_by`
	_, err := r.Pool.Exec(ctx, query, m.OwnerID, m.LockDate, m.FiscalYearEnd, m.LastClosedPeriod, m.UpdatedAt, m.UpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save lock date setting", err)
	}
	return nil
}
