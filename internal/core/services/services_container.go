package services

import (
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, chart portssvc.AccountLookup) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Sequence and lock date services have no service dependencies; everything else builds on them.
	container.Sequence = NewSequenceService(repos.SequenceRepo,
		WithSequenceMaxRetries(cfg.SequenceMaxRetries),
	)
	container.LockDate = NewLockDateService(repos.LockDateRepo)
	container.Templates = NewTemplateResolver(chart)

	container.Posting = NewPostingService(
		repos.JournalRepo,
		container.Sequence,
		container.LockDate,
		container.Templates,
	)
	container.Reversal = NewReversalService(
		repos.JournalRepo,
		container.Sequence,
		container.LockDate,
	)
	container.Query = NewJournalQueryService(repos.JournalRepo)

	return container
}
