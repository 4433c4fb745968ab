package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvc = (*MockPostingService)(nil)

func (m *MockPostingService) Post(ctx context.Context, req domain.PostingRequest) domain.PostingResult {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.PostingResult)
}

func (m *MockPostingService) PostToBatch(ctx context.Context, unit portsrepo.JournalWriteUnit, req domain.PostingRequest, sequenceNumber int64) (*domain.EntryRef, error) {
	args := m.Called(ctx, unit, req, sequenceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryRef), args.Error(1)
}

func (m *MockPostingService) ReserveSequences(ctx context.Context, ownerID string, count int) ([]int64, error) {
	args := m.Called(ctx, ownerID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// --- Mock ReversalService ---
type MockReversalService struct {
	mock.Mock
}

var _ portssvc.ReversalSvc = (*MockReversalService)(nil)

func (m *MockReversalService) Reverse(ctx context.Context, req domain.ReversalRequest) domain.ReversalResult {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.ReversalResult)
}

func (m *MockReversalService) ReverseBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID, reason string, reversalType domain.ReversalType, requestedBy string) ([]domain.ReversalResult, error) {
	args := m.Called(ctx, ownerID, sourceType, documentID, reason, reversalType, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReversalResult), args.Error(1)
}

func (m *MockReversalService) ReverseByTransactionID(ctx context.Context, ownerID, transactionID, reason string, reversalType domain.ReversalType, requestedBy string) ([]domain.ReversalResult, error) {
	args := m.Called(ctx, ownerID, transactionID, reason, reversalType, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReversalResult), args.Error(1)
}

// --- Mock JournalQueryService ---
type MockQueryService struct {
	mock.Mock
}

var _ portssvc.JournalQuerySvc = (*MockQueryService)(nil)

func (m *MockQueryService) GetEntry(ctx context.Context, ownerID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, ownerID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockQueryService) GetEntriesBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID string, includeReversed bool) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, ownerID, sourceType, documentID, includeReversed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockQueryService) GetEntriesByTransactionID(ctx context.Context, ownerID, transactionID string, includeReversed bool) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, ownerID, transactionID, includeReversed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockQueryService) ListEntries(ctx context.Context, ownerID string, filter domain.JournalEntryFilter, pageSize int, nextToken *string) (*domain.JournalEntryPage, error) {
	args := m.Called(ctx, ownerID, filter, pageSize, nextToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntryPage), args.Error(1)
}

func (m *MockQueryService) CountEntriesByStatus(ctx context.Context, ownerID string, status *domain.JournalStatus) (int64, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQueryService) CountEntriesBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID string) (int64, error) {
	args := m.Called(ctx, ownerID, sourceType, documentID)
	return args.Get(0).(int64), args.Error(1)
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

// --- Mock LockDateService ---
type MockLockDateService struct {
	mock.Mock
}

var _ portssvc.LockDateSvcFacade = (*MockLockDateService)(nil)

func (m *MockLockDateService) IsLocked(ctx context.Context, ownerID string, date time.Time) (bool, error) {
	args := m.Called(ctx, ownerID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockLockDateService) Validate(ctx context.Context, ownerID string, date time.Time) error {
	args := m.Called(ctx, ownerID, date)
	return args.Error(0)
}

func (m *MockLockDateService) GetSetting(ctx context.Context, ownerID string) (*domain.LockDateSetting, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LockDateSetting), args.Error(1)
}

func (m *MockLockDateService) UpdateSetting(ctx context.Context, setting domain.LockDateSetting) (*domain.LockDateSetting, error) {
	args := m.Called(ctx, setting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LockDateSetting), args.Error(1)
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
