package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
	// Unit is handed to the callback of WithinUnit.
	Unit *MockWriteUnit
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, ownerID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, ownerID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntriesBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID string, activeOnly bool, limit int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, ownerID, sourceType, documentID, activeOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntriesByTransactionID(ctx context.Context, ownerID, transactionID string, activeOnly bool, limit int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, ownerID, transactionID, activeOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, ownerID string, filter domain.JournalEntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, ownerID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) CountEntries(ctx context.Context, ownerID string, status *domain.JournalStatus) (int64, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) CountEntriesBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID string) (int64, error) {
	args := m.Called(ctx, ownerID, sourceType, documentID)
	return args.Get(0).(int64), args.Error(1)
}

// WithinUnit runs fn against Unit unless the expectation returns an error first.
func (m *MockJournalRepository) WithinUnit(ctx context.Context, fn func(unit portsrepo.JournalWriteUnit) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Unit)
}

// --- Mock JournalWriteUnit ---
type MockWriteUnit struct {
	mock.Mock
}

var _ portsrepo.JournalWriteUnit = (*MockWriteUnit)(nil)

func (m *MockWriteUnit) InsertEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWriteUnit) MarkEntryReversed(ctx context.Context, ownerID, entryID string, link domain.ReversalLink) error {
	args := m.Called(ctx, ownerID, entryID, link)
	return args.Error(0)
}

// --- Mock SequenceRepository ---
type MockSequenceRepository struct {
	mock.Mock
}

var _ portsrepo.SequenceRepositoryFacade = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) FindSequence(ctx context.Context, ownerID string) (*domain.SequenceCounter, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SequenceCounter), args.Error(1)
}

func (m *MockSequenceRepository) IncrementSequence(ctx context.Context, ownerID string, delta int64) (int64, error) {
	args := m.Called(ctx, ownerID, delta)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock LockDateRepository ---
type MockLockDateRepository struct {
	mock.Mock
}

var _ portsrepo.LockDateRepositoryFacade = (*MockLockDateRepository)(nil)

func (m *MockLockDateRepository) FindLockDateSetting(ctx context.Context, ownerID string) (*domain.LockDateSetting, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LockDateSetting), args.Error(1)
}

func (m *MockLockDateRepository) SaveLockDateSetting(ctx context.Context, setting domain.LockDateSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

// --- Mock SequenceService ---
type MockSequenceService struct {
	mock.Mock
}

var _ portssvc.SequenceSvcFacade = (*MockSequenceService)(nil)

func (m *MockSequenceService) Next(ctx context.Context, ownerID string) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSequenceService) ReserveBlock(ctx context.Context, ownerID string, count int) ([]int64, error) {
	args := m.Called(ctx, ownerID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockSequenceService) Current(ctx context.Context, ownerID string) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSequenceService) PreviewNext(ctx context.Context, ownerID string) (string, error) {
	args := m.Called(ctx, ownerID)
	return args.String(0), args.Error(1)
}

// --- Mock LockDateGuard ---
type MockLockDateGuard struct {
	mock.Mock
}

var _ portssvc.LockDateGuardSvc = (*MockLockDateGuard)(nil)

func (m *MockLockDateGuard) IsLocked(ctx context.Context, ownerID string, date time.Time) (bool, error) {
	args := m.Called(ctx, ownerID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockLockDateGuard) Validate(ctx context.Context, ownerID string, date time.Time) error {
	args := m.Called(ctx, ownerID, date)
	return args.Error(0)
}

// --- Mock TemplateResolver ---
type MockTemplateResolver struct {
	mock.Mock
}

var _ portssvc.TemplateResolverSvc = (*MockTemplateResolver)(nil)

func (m *MockTemplateResolver) Resolve(kind domain.TemplateKind, tctx domain.TemplateContext) (domain.AccountPair, error) {
	args := m.Called(kind, tctx)
	return args.Get(0).(domain.AccountPair), args.Error(1)
}

func (m *MockTemplateResolver) Kinds() []domain.TemplateKind {
	args := m.Called()
	return args.Get(0).([]domain.TemplateKind)
}

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
