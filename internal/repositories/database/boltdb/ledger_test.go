package boltdb_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/bookkeeping_ledger/internal/accounts"
	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/config"
	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/database/boltdb"
)

const owner = "owner-1"

// LedgerTestSuite drives the real services against a bbolt file.
type LedgerTestSuite struct {
	suite.Suite
	store *boltdb.Store
	repos portsrepo.RepositoryProvider
	svc   *portssvc.ServiceContainer
	ctx   context.Context
}

func (suite *LedgerTestSuite) SetupTest() {
	store, err := boltdb.Open(filepath.Join(suite.T().TempDir(), "ledger.db"))
	suite.Require().NoError(err)
	suite.store = store
	suite.repos = boltdb.NewRepositoryProvider(store)
	suite.svc = services.NewServiceContainer(&config.Config{SequenceMaxRetries: 5}, suite.repos, accounts.Default())
	suite.ctx = context.Background()
}

func (suite *LedgerTestSuite) TearDownTest() {
	suite.NoError(suite.store.Close())
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func saleRequest(documentID string, postedOn time.Time, amount int64) domain.PostingRequest {
	return domain.PostingRequest{
		OwnerID:      owner,
		TemplateKind: domain.TemplateLedgerIncome,
		Amount:       decimal.NewFromInt(amount),
		Date:         postedOn,
		Description:  "Sale " + documentID,
		Source:       domain.JournalSource{Type: domain.SourceLedger, DocumentID: documentID, TransactionID: "txn-" + documentID},
		Context:      domain.TemplateContext{IsTracked: true},
		CreatedBy:    "tester",
	}
}

func (suite *LedgerTestSuite) post(req domain.PostingRequest) domain.PostingResult {
	result := suite.svc.Posting.Post(suite.ctx, req)
	suite.Require().True(result.Success, result.Error)
	return result
}

func (suite *LedgerTestSuite) entry(id string) *domain.JournalEntry {
	e, err := suite.svc.Query.GetEntry(suite.ctx, owner, id)
	suite.Require().NoError(err)
	return e
}

func (suite *LedgerTestSuite) TestConcurrentPostsAreGapless() {
	const workers = 24
	var wg sync.WaitGroup
	results := make([]domain.PostingResult, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = suite.svc.Posting.Post(suite.ctx, saleRequest(fmt.Sprintf("inv-%d", i), day("2024-08-01"), int64(100+i)))
		}(i)
	}
	wg.Wait()

	seqs := make([]int64, 0, workers)
	for _, r := range results {
		suite.Require().True(r.Success, r.Error)
		suite.Equal(domain.FormatEntryNumber(r.SequenceNumber), r.EntryNumber)
		seqs = append(seqs, r.SequenceNumber)
	}
	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })
	for i, s := range seqs {
		suite.Equal(int64(i+1), s)
	}

	current, err := suite.svc.Sequence.Current(suite.ctx, owner)
	suite.NoError(err)
	suite.Equal(int64(workers), current)
}

func (suite *LedgerTestSuite) TestPostedEntriesBalanceAndRoundTrip() {
	r := suite.post(saleRequest("inv-1", day("2024-08-01"), 250))

	e := suite.entry(r.EntryID)
	suite.Equal(domain.Posted, e.Status)
	suite.Equal("JE-000001", e.EntryNumber)
	suite.Equal(day("2024-08-01"), e.Date)
	suite.Equal("1100", e.Lines[0].AccountCode)
	suite.Equal("4100", e.Lines[1].AccountCode)
	debits, credits := e.Totals()
	suite.True(debits.Equal(decimal.NewFromInt(250)))
	suite.True(domain.IsBalanced(debits, credits))
}

func (suite *LedgerTestSuite) TestReversalMirrorsAndLinks() {
	orig := suite.post(saleRequest("inv-1", day("2024-08-01"), 300))

	res := suite.svc.Reversal.Reverse(suite.ctx, domain.ReversalRequest{
		OwnerID: owner, EntryID: orig.EntryID, Reason: "duplicate", RequestedBy: "tester",
	})
	suite.Require().True(res.Success, res.Error)
	suite.Equal(int64(2), res.ReversalSequenceNumber)

	original := suite.entry(orig.EntryID)
	reversal := suite.entry(res.ReversalEntryID)

	suite.Equal(domain.Reversed, original.Status)
	suite.Require().NotNil(original.Reversal)
	suite.Equal(res.ReversalEntryID, *original.Reversal.ReversedByEntryID)
	suite.NotNil(original.Reversal.ReversedAt)
	suite.Equal(domain.ReversalVoid, original.Reversal.ReversalType)

	suite.Equal(domain.Posted, reversal.Status)
	suite.True(reversal.IsReversal())
	suite.Equal(orig.EntryID, *reversal.Reversal.ReversesEntryID)
	suite.Equal(domain.DateOnly(time.Now().UTC()), reversal.Date)
	suite.Equal(original.Source, reversal.Source)
	suite.Equal("Reversal of JE-000001: Sale inv-1", reversal.Description)

	od, oc := original.Totals()
	rd, rc := reversal.Totals()
	suite.True(od.Equal(rc))
	suite.True(oc.Equal(rd))
}

func (suite *LedgerTestSuite) TestNoDoubleReversal() {
	orig := suite.post(saleRequest("inv-1", day("2024-08-01"), 300))
	first := suite.svc.Reversal.Reverse(suite.ctx, domain.ReversalRequest{OwnerID: owner, EntryID: orig.EntryID, Reason: "x"})
	suite.Require().True(first.Success, first.Error)

	again := suite.svc.Reversal.Reverse(suite.ctx, domain.ReversalRequest{OwnerID: owner, EntryID: orig.EntryID, Reason: "x"})
	suite.False(again.Success)
	suite.ErrorIs(again.Err, services.ErrAlreadyReversed)

	ofReversal := suite.svc.Reversal.Reverse(suite.ctx, domain.ReversalRequest{OwnerID: owner, EntryID: first.ReversalEntryID, Reason: "x"})
	suite.False(ofReversal.Success)
	suite.ErrorIs(ofReversal.Err, services.ErrCannotReverseReversal)

	// Rejections before numbering burn nothing.
	current, err := suite.svc.Sequence.Current(suite.ctx, owner)
	suite.NoError(err)
	suite.Equal(int64(2), current)
}

func (suite *LedgerTestSuite) TestConcurrentReversalHasOneWinner() {
	orig := suite.post(saleRequest("inv-1", day("2024-08-01"), 300))

	const workers = 8
	var wg sync.WaitGroup
	results := make([]domain.ReversalResult, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = suite.svc.Reversal.Reverse(suite.ctx, domain.ReversalRequest{
				OwnerID: owner, EntryID: orig.EntryID, Reason: fmt.Sprintf("attempt %d", i),
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, r := range results {
		if r.Success {
			winners++
			continue
		}
		suite.ErrorIs(r.Err, services.ErrAlreadyReversed)
	}
	suite.Equal(1, winners)

	reversed := domain.Reversed
	count, err := suite.svc.Query.CountEntriesByStatus(suite.ctx, owner, &reversed)
	suite.NoError(err)
	suite.Equal(int64(1), count)

	all, err := suite.svc.Query.CountEntriesByStatus(suite.ctx, owner, nil)
	suite.NoError(err)
	suite.Equal(int64(2), all)
}

func (suite *LedgerTestSuite) TestLockedPeriodConsumesNoSequence() {
	suite.post(saleRequest("inv-1", day("2024-07-15"), 100))

	lock := day("2024-06-30")
	_, err := suite.svc.LockDate.UpdateSetting(suite.ctx, domain.LockDateSetting{OwnerID: owner, LockDate: &lock, UpdatedBy: "tester"})
	suite.Require().NoError(err)

	locked := suite.svc.Posting.Post(suite.ctx, saleRequest("inv-2", day("2024-06-30"), 100))
	suite.False(locked.Success)
	suite.ErrorIs(locked.Err, apperrors.ErrLockedPeriod)
	var lockedErr *apperrors.LockedPeriodError
	suite.True(errors.As(locked.Err, &lockedErr))

	current, err := suite.svc.Sequence.Current(suite.ctx, owner)
	suite.NoError(err)
	suite.Equal(int64(1), current)

	open := suite.post(saleRequest("inv-3", day("2024-07-01"), 100))
	suite.Equal(int64(2), open.SequenceNumber)
}

func (suite *LedgerTestSuite) TestReversalOfLockedEntryRejected() {
	orig := suite.post(saleRequest("inv-1", day("2024-06-15"), 100))
	lock := day("2024-06-30")
	_, err := suite.svc.LockDate.UpdateSetting(suite.ctx, domain.LockDateSetting{OwnerID: owner, LockDate: &lock})
	suite.Require().NoError(err)

	res := suite.svc.Reversal.Reverse(suite.ctx, domain.ReversalRequest{OwnerID: owner, EntryID: orig.EntryID, Reason: "too late"})

	suite.False(res.Success)
	suite.ErrorIs(res.Err, apperrors.ErrLockedPeriod)
	suite.Equal(domain.Posted, suite.entry(orig.EntryID).Status)

	// Reopening the period lets the reversal through.
	_, err = suite.svc.LockDate.UpdateSetting(suite.ctx, domain.LockDateSetting{OwnerID: owner})
	suite.Require().NoError(err)
	res = suite.svc.Reversal.Reverse(suite.ctx, domain.ReversalRequest{OwnerID: owner, EntryID: orig.EntryID, Reason: "reopened"})
	suite.True(res.Success, res.Error)
}

func (suite *LedgerTestSuite) TestBulkReversalBySource() {
	for i := 0; i < 3; i++ {
		suite.post(saleRequest("inv-42", day("2024-08-01").AddDate(0, 0, i), int64(10*(i+1))))
	}
	other := suite.post(saleRequest("inv-43", day("2024-08-01"), 99))

	results, err := suite.svc.Reversal.ReverseBySource(suite.ctx, owner, domain.SourceLedger, "inv-42", "invoice voided", domain.ReversalVoid, "tester")
	suite.Require().NoError(err)
	suite.Require().Len(results, 3)
	for _, r := range results {
		suite.True(r.Success, r.Error)
	}

	count, err := suite.svc.Query.CountEntriesBySource(suite.ctx, owner, domain.SourceLedger, "inv-42")
	suite.NoError(err)
	suite.Equal(int64(6), count)

	active, err := suite.svc.Query.GetEntriesBySource(suite.ctx, owner, domain.SourceLedger, "inv-42", false)
	suite.NoError(err)
	suite.Empty(active)

	all, err := suite.svc.Query.GetEntriesBySource(suite.ctx, owner, domain.SourceLedger, "inv-42", true)
	suite.NoError(err)
	suite.Len(all, 6)

	suite.Equal(domain.Posted, suite.entry(other.EntryID).Status)

	// A second pass finds nothing left to reverse.
	again, err := suite.svc.Reversal.ReverseBySource(suite.ctx, owner, domain.SourceLedger, "inv-42", "again", "", "tester")
	suite.NoError(err)
	suite.Empty(again)
}

func (suite *LedgerTestSuite) TestBulkReversalByTransaction() {
	req := saleRequest("inv-7", day("2024-08-01"), 50)
	suite.post(req)
	payment := req
	payment.TemplateKind = domain.TemplateCashReceipt
	payment.Source = domain.JournalSource{Type: domain.SourcePayment, DocumentID: "pay-7", TransactionID: req.Source.TransactionID}
	suite.post(payment)

	results, err := suite.svc.Reversal.ReverseByTransactionID(suite.ctx, owner, req.Source.TransactionID, "sale cancelled", domain.ReversalCorrection, "tester")
	suite.Require().NoError(err)
	suite.Len(results, 2)

	entries, err := suite.svc.Query.GetEntriesByTransactionID(suite.ctx, owner, req.Source.TransactionID, true)
	suite.NoError(err)
	suite.Len(entries, 4)
}

func (suite *LedgerTestSuite) TestBulkReversalFindsLiveEntryBehindCorrectedHistory() {
	// 25 originals plus their 25 reversals fill a whole lookup window ahead of the live entry.
	const corrected = domain.LookupLimit / 2
	for i := 0; i < corrected; i++ {
		suite.post(saleRequest("inv-42", day("2024-08-01"), int64(10+i)))
	}
	first, err := suite.svc.Reversal.ReverseBySource(suite.ctx, owner, domain.SourceLedger, "inv-42", "re-issued", domain.ReversalCorrection, "tester")
	suite.Require().NoError(err)
	suite.Require().Len(first, corrected)

	live := suite.post(saleRequest("inv-42", day("2024-08-02"), 999))
	suite.Equal(int64(2*corrected+1), live.SequenceNumber)

	active, err := suite.svc.Query.GetEntriesBySource(suite.ctx, owner, domain.SourceLedger, "inv-42", false)
	suite.NoError(err)
	suite.Require().Len(active, 1)
	suite.Equal(live.EntryID, active[0].EntryID)

	byTxn, err := suite.svc.Query.GetEntriesByTransactionID(suite.ctx, owner, "txn-inv-42", false)
	suite.NoError(err)
	suite.Require().Len(byTxn, 1)
	suite.Equal(live.EntryID, byTxn[0].EntryID)

	results, err := suite.svc.Reversal.ReverseBySource(suite.ctx, owner, domain.SourceLedger, "inv-42", "voided", domain.ReversalVoid, "tester")
	suite.NoError(err)
	suite.Require().Len(results, 1)
	suite.True(results[0].Success, results[0].Error)
	suite.Equal(live.EntryID, results[0].OriginalEntryID)
	suite.Equal(domain.Reversed, suite.entry(live.EntryID).Status)
}

func (suite *LedgerTestSuite) TestConcurrentBlocksAndNextAreGapless() {
	const (
		singles   = 12
		blocks    = 12
		blockSize = 3
	)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		all      []int64
		reserved [][]int64
	)
	for i := 0; i < singles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := suite.svc.Sequence.Next(suite.ctx, owner)
			suite.NoError(err)
			mu.Lock()
			all = append(all, n)
			mu.Unlock()
		}()
	}
	for i := 0; i < blocks; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			block, err := suite.svc.Sequence.ReserveBlock(suite.ctx, owner, blockSize)
			suite.NoError(err)
			mu.Lock()
			all = append(all, block...)
			reserved = append(reserved, block)
			mu.Unlock()
		}()
	}
	wg.Wait()

	for _, block := range reserved {
		suite.Require().Len(block, blockSize)
		for j := 1; j < len(block); j++ {
			suite.Equal(block[j-1]+1, block[j], "block %v is not contiguous", block)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	suite.Require().Len(all, singles+blocks*blockSize)
	for i, n := range all {
		suite.Equal(int64(i+1), n)
	}
}

func (suite *LedgerTestSuite) TestPaginationVisitsEveryEntryOnce() {
	const total = 23
	for i := 0; i < total; i++ {
		// Several entries share a date so ties are broken by sequence number.
		suite.post(saleRequest(fmt.Sprintf("inv-%d", i), day("2024-08-01").AddDate(0, 0, (i*7)%5), 10))
	}

	for _, order := range []domain.EntryOrder{domain.OrderDateDesc, domain.OrderDateAsc, domain.OrderSequenceDesc, domain.OrderSequenceAsc} {
		suite.Run(string(order), func() {
			var seen []domain.JournalEntry
			var token *string
			pages := 0
			for {
				page, err := suite.svc.Query.ListEntries(suite.ctx, owner, domain.JournalEntryFilter{Order: order}, 5, token)
				suite.Require().NoError(err)
				suite.LessOrEqual(len(page.Entries), 5)
				seen = append(seen, page.Entries...)
				pages++
				if page.NextToken == nil {
					break
				}
				token = page.NextToken
				suite.Require().Less(pages, total, "pagination did not terminate")
			}

			suite.Len(seen, total)
			ids := map[string]bool{}
			for _, e := range seen {
				suite.False(ids[e.EntryID], "entry %s seen twice", e.EntryNumber)
				ids[e.EntryID] = true
			}
			suite.True(sort.SliceIsSorted(seen, func(i, j int) bool {
				return sortsBefore(order, seen[i], seen[j])
			}))
		})
	}
}

func sortsBefore(order domain.EntryOrder, a, b domain.JournalEntry) bool {
	switch order {
	case domain.OrderDateAsc:
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.SequenceNumber < b.SequenceNumber
	case domain.OrderSequenceAsc:
		return a.SequenceNumber < b.SequenceNumber
	case domain.OrderSequenceDesc:
		return a.SequenceNumber > b.SequenceNumber
	default:
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.SequenceNumber > b.SequenceNumber
	}
}

func (suite *LedgerTestSuite) TestPaginationFilters() {
	suite.post(saleRequest("inv-1", day("2024-07-31"), 10))
	r := suite.post(saleRequest("inv-2", day("2024-08-01"), 10))
	suite.post(saleRequest("inv-3", day("2024-08-02"), 10))
	suite.Require().True(suite.svc.Reversal.Reverse(suite.ctx, domain.ReversalRequest{OwnerID: owner, EntryID: r.EntryID, Reason: "x"}).Success)

	from, to := day("2024-08-01"), day("2024-08-02")
	page, err := suite.svc.Query.ListEntries(suite.ctx, owner, domain.JournalEntryFilter{DateFrom: &from, DateTo: &to, Order: domain.OrderSequenceAsc}, 0, nil)
	suite.NoError(err)
	suite.Require().Len(page.Entries, 2)
	suite.Equal("Sale inv-2", page.Entries[0].Description)
	suite.Equal("Sale inv-3", page.Entries[1].Description)

	posted := domain.Posted
	page, err = suite.svc.Query.ListEntries(suite.ctx, owner, domain.JournalEntryFilter{Status: &posted}, 0, nil)
	suite.NoError(err)
	suite.Len(page.Entries, 3) // two untouched originals plus the reversal
}

func (suite *LedgerTestSuite) TestPaginationRejectsBadTokens() {
	for i := 0; i < 3; i++ {
		suite.post(saleRequest(fmt.Sprintf("inv-%d", i), day("2024-08-01"), 10))
	}
	page, err := suite.svc.Query.ListEntries(suite.ctx, owner, domain.JournalEntryFilter{Order: domain.OrderSequenceAsc}, 1, nil)
	suite.Require().NoError(err)
	suite.Require().NotNil(page.NextToken)

	_, err = suite.svc.Query.ListEntries(suite.ctx, owner, domain.JournalEntryFilter{Order: domain.OrderDateDesc}, 1, page.NextToken)
	suite.ErrorIs(err, apperrors.ErrValidation)

	garbage := "%%%not-base64"
	_, err = suite.svc.Query.ListEntries(suite.ctx, owner, domain.JournalEntryFilter{}, 1, &garbage)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerTestSuite) TestPostToBatchIsAtomic() {
	seqs, err := suite.svc.Posting.ReserveSequences(suite.ctx, owner, 2)
	suite.Require().NoError(err)
	suite.Equal([]int64{1, 2}, seqs)

	boom := errors.New("caller aborted")
	err = suite.repos.JournalRepo.WithinUnit(suite.ctx, func(unit portsrepo.JournalWriteUnit) error {
		if _, err := suite.svc.Posting.PostToBatch(suite.ctx, unit, saleRequest("inv-1", day("2024-08-01"), 10), seqs[0]); err != nil {
			return err
		}
		return boom
	})
	suite.ErrorIs(err, boom)
	total, err := suite.svc.Query.CountEntriesByStatus(suite.ctx, owner, nil)
	suite.NoError(err)
	suite.Zero(total)

	var refs []*domain.EntryRef
	err = suite.repos.JournalRepo.WithinUnit(suite.ctx, func(unit portsrepo.JournalWriteUnit) error {
		for i, seq := range seqs {
			ref, err := suite.svc.Posting.PostToBatch(suite.ctx, unit, saleRequest(fmt.Sprintf("inv-%d", i), day("2024-08-01"), 10), seq)
			if err != nil {
				return err
			}
			refs = append(refs, ref)
		}
		return nil
	})
	suite.Require().NoError(err)
	suite.Require().Len(refs, 2)
	suite.Equal("JE-000002", refs[1].EntryNumber)
	suite.Equal(domain.Posted, suite.entry(refs[0].EntryID).Status)
}

func (suite *LedgerTestSuite) TestDuplicateSequenceRejected() {
	err := suite.repos.JournalRepo.WithinUnit(suite.ctx, func(unit portsrepo.JournalWriteUnit) error {
		for i := 0; i < 2; i++ {
			if _, err := suite.svc.Posting.PostToBatch(suite.ctx, unit, saleRequest(fmt.Sprintf("inv-%d", i), day("2024-08-01"), 10), 1); err != nil {
				return err
			}
		}
		return nil
	})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *LedgerTestSuite) TestOwnersAreIsolated() {
	r := suite.post(saleRequest("inv-1", day("2024-08-01"), 10))

	_, err := suite.svc.Query.GetEntry(suite.ctx, "owner-2", r.EntryID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	other := saleRequest("inv-1", day("2024-08-01"), 10)
	other.OwnerID = "owner-2"
	res := suite.svc.Posting.Post(suite.ctx, other)
	suite.Require().True(res.Success, res.Error)
	suite.Equal(int64(1), res.SequenceNumber)
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}
