package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		JournalRepo:  newPgxJournalRepository(dbPool),
		SequenceRepo: newPgxSequenceRepository(dbPool),
		LockDateRepo: newPgxLockDateRepository(dbPool),
	}
}
