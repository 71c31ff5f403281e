// Package repotest holds the behaviour every storage backend must share. Each
// backend runs RepositorySuite from its own tests.
package repotest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/finance_flow/internal/apperrors"
	"github.com/SscSPs/finance_flow/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_flow/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

// RepositorySuite exercises a RepositoryProvider. NewProvider is called before
// every test and must return an empty store.
type RepositorySuite struct {
	suite.Suite
	NewProvider func() portsrepo.RepositoryProvider

	ctx   context.Context
	repos portsrepo.RepositoryProvider
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = s.NewProvider()
}

func (s *RepositorySuite) newRecord(kind domain.TransactionKind, owner, amount, category, date string) domain.NewLedgerRecord {
	d, err := domain.ParseDate(date)
	s.Require().NoError(err)
	return domain.NewLedgerRecord{
		Kind:     kind,
		Owner:    owner,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     d,
	}
}

func (s *RepositorySuite) append(rec domain.NewLedgerRecord) int64 {
	id, err := s.repos.LedgerRepo.Append(s.ctx, rec)
	s.Require().NoError(err)
	return id
}

// --- users ---

func (s *RepositorySuite) TestSaveAndFindUser() {
	err := s.repos.UserRepo.SaveUser(s.ctx, domain.User{Username: "alice", PasswordHash: "hash-1", CreatedAt: time.Now().UTC()})
	s.Require().NoError(err)

	u, err := s.repos.UserRepo.FindUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", u.Username)
	s.Equal("hash-1", u.PasswordHash)
}

func (s *RepositorySuite) TestSaveUser_DuplicateLeavesOriginal() {
	s.Require().NoError(s.repos.UserRepo.SaveUser(s.ctx, domain.User{Username: "alice", PasswordHash: "original"}))

	err := s.repos.UserRepo.SaveUser(s.ctx, domain.User{Username: "alice", PasswordHash: "intruder"})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	u, err := s.repos.UserRepo.FindUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("original", u.PasswordHash)
}

func (s *RepositorySuite) TestFindUser_Unknown() {
	u, err := s.repos.UserRepo.FindUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(u)
}

func (s *RepositorySuite) TestFindUser_UsernameIsNotAQueryFragment() {
	s.Require().NoError(s.repos.UserRepo.SaveUser(s.ctx, domain.User{Username: "alice", PasswordHash: "h"}))

	_, err := s.repos.UserRepo.FindUserByUsername(s.ctx, `alice" OR "1"="1`)
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.repos.UserRepo.FindUserByUsername(s.ctx, "ALICE")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ledger ---

func (s *RepositorySuite) TestAppendAndList_InsertionOrderUniqueIDs() {
	first := s.append(s.newRecord(domain.Income, "alice", "1000", "Salary", "2024-01-05"))
	second := s.append(s.newRecord(domain.Income, "alice", "50.25", "Gift", "2024-01-01"))
	third := s.append(s.newRecord(domain.Income, "alice", "0.10", "Interest", "2024-01-03"))

	s.Less(first, second)
	s.Less(second, third)

	records, err := s.repos.LedgerRepo.ListByOwner(s.ctx, domain.Income, "alice")
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal([]int64{first, second, third}, []int64{records[0].ID, records[1].ID, records[2].ID})
	s.Equal([]string{"Salary", "Gift", "Interest"}, []string{records[0].Category, records[1].Category, records[2].Category})
	for _, r := range records {
		s.Equal(domain.Income, r.Kind)
		s.Equal("alice", r.Owner)
	}
	s.True(decimal.RequireFromString("0.10").Equal(records[2].Amount), "got %s", records[2].Amount)
	s.Equal(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), records[2].Date.UTC())
}

func (s *RepositorySuite) TestAppend_DescriptionRoundTrip() {
	rec := s.newRecord(domain.Expense, "alice", "12.5", "Food", "2024-02-29")
	rec.Description = "lunch; DROP TABLE expenses; --"
	s.append(rec)
	s.append(s.newRecord(domain.Expense, "alice", "1", "Food", "2024-03-01"))

	records, err := s.repos.LedgerRepo.ListByOwner(s.ctx, domain.Expense, "alice")
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("lunch; DROP TABLE expenses; --", records[0].Description)
	s.Equal("", records[1].Description)
}

func (s *RepositorySuite) TestAppend_AmountKeepsFullScale() {
	amounts := []string{"0.12345", "1234567890123456789.000000001", "-0.00001"}
	for _, a := range amounts {
		s.append(s.newRecord(domain.Income, "alice", a, "Interest", "2024-01-01"))
	}

	records, err := s.repos.LedgerRepo.ListByOwner(s.ctx, domain.Income, "alice")
	s.Require().NoError(err)
	s.Require().Len(records, len(amounts))
	for i, a := range amounts {
		s.True(decimal.RequireFromString(a).Equal(records[i].Amount), "want %s, got %s", a, records[i].Amount)
	}

	income, _, err := s.repos.LedgerRepo.SnapshotByOwner(s.ctx, "alice")
	s.Require().NoError(err)
	s.Require().Len(income, len(amounts))
	s.True(decimal.RequireFromString("0.12345").Equal(income[0].Amount), "got %s", income[0].Amount)
}

func (s *RepositorySuite) TestAppend_IDsArePerCollection() {
	s.append(s.newRecord(domain.Income, "alice", "1", "A", "2024-01-01"))
	s.append(s.newRecord(domain.Income, "alice", "1", "A", "2024-01-01"))
	expenseID := s.append(s.newRecord(domain.Expense, "alice", "1", "B", "2024-01-01"))

	s.Equal(int64(1), expenseID)
}

func (s *RepositorySuite) TestAppend_UnknownKind() {
	_, err := s.repos.LedgerRepo.Append(s.ctx, domain.NewLedgerRecord{Kind: "TRANSFER", Owner: "alice"})
	s.ErrorIs(err, domain.ErrUnknownKind)
}

func (s *RepositorySuite) TestList_EmptyIsNotError() {
	records, err := s.repos.LedgerRepo.ListByOwner(s.ctx, domain.Expense, "nobody")
	s.Require().NoError(err)
	s.NotNil(records)
	s.Empty(records)
}

func (s *RepositorySuite) TestList_OwnerIsolation() {
	s.append(s.newRecord(domain.Income, "alice", "100", "Salary", "2024-01-01"))
	s.append(s.newRecord(domain.Income, "bob", "100", "Salary", "2024-01-01"))

	alice, err := s.repos.LedgerRepo.ListByOwner(s.ctx, domain.Income, "alice")
	s.Require().NoError(err)
	bob, err := s.repos.LedgerRepo.ListByOwner(s.ctx, domain.Income, "bob")
	s.Require().NoError(err)

	s.Require().Len(alice, 1)
	s.Require().Len(bob, 1)
	s.Equal("alice", alice[0].Owner)
	s.Equal("bob", bob[0].Owner)
	s.NotEqual(alice[0].ID, bob[0].ID)
}

func (s *RepositorySuite) TestClearByOwner_BothCollectionsOnlyThatOwner() {
	s.append(s.newRecord(domain.Income, "alice", "1000", "Salary", "2024-01-01"))
	s.append(s.newRecord(domain.Expense, "alice", "250", "Rent", "2024-01-02"))
	s.append(s.newRecord(domain.Expense, "alice", "20", "Food", "2024-01-03"))
	s.append(s.newRecord(domain.Income, "bob", "100", "Salary", "2024-01-01"))

	res, err := s.repos.LedgerRepo.ClearByOwner(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(domain.ClearResult{IncomeRemoved: 1, ExpensesRemoved: 2}, res)

	income, expenses, err := s.repos.LedgerRepo.SnapshotByOwner(s.ctx, "alice")
	s.Require().NoError(err)
	s.Empty(income)
	s.Empty(expenses)

	bob, err := s.repos.LedgerRepo.ListByOwner(s.ctx, domain.Income, "bob")
	s.Require().NoError(err)
	s.Len(bob, 1)

	// clearing again is a no-op
	res, err = s.repos.LedgerRepo.ClearByOwner(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(domain.ClearResult{}, res)
}

func (s *RepositorySuite) TestAppendAfterClear_KeepsIDsUnique() {
	before := s.append(s.newRecord(domain.Income, "alice", "1", "A", "2024-01-01"))
	_, err := s.repos.LedgerRepo.ClearByOwner(s.ctx, "alice")
	s.Require().NoError(err)
	after := s.append(s.newRecord(domain.Income, "alice", "1", "A", "2024-01-01"))

	s.Greater(after, before)
}

func (s *RepositorySuite) TestSnapshotByOwner() {
	s.append(s.newRecord(domain.Income, "alice", "1000", "Salary", "2024-01-01"))
	s.append(s.newRecord(domain.Expense, "alice", "250", "Rent", "2024-01-02"))
	s.append(s.newRecord(domain.Expense, "bob", "9", "Rent", "2024-01-02"))

	income, expenses, err := s.repos.LedgerRepo.SnapshotByOwner(s.ctx, "alice")
	s.Require().NoError(err)
	s.Require().Len(income, 1)
	s.Require().Len(expenses, 1)
	s.Equal(domain.Income, income[0].Kind)
	s.Equal(domain.Expense, expenses[0].Kind)
	s.Equal("Rent", expenses[0].Category)
}

func (s *RepositorySuite) TestConcurrentAppends_NoLostWrites() {
	const workers, perWorker = 8, 25

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < perWorker; i++ {
				kind := domain.Income
				if i%2 == 1 {
					kind = domain.Expense
				}
				rec := s.newRecord(kind, "alice", "1.01", fmt.Sprintf("w%d", w), "2024-01-01")
				if _, err := s.repos.LedgerRepo.Append(s.ctx, rec); err != nil {
					return err
				}
			}
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	income, expenses, err := s.repos.LedgerRepo.SnapshotByOwner(s.ctx, "alice")
	s.Require().NoError(err)
	s.Len(income, workers*((perWorker+1)/2))
	s.Len(expenses, workers*(perWorker/2))

	for _, records := range [][]domain.LedgerRecord{income, expenses} {
		seen := make(map[int64]bool, len(records))
		for _, r := range records {
			s.False(seen[r.ID], "duplicate id %d", r.ID)
			seen[r.ID] = true
		}
	}
}

func (s *RepositorySuite) TestConcurrentClearAndAppend_AllOrNothing() {
	for i := 0; i < 10; i++ {
		s.append(s.newRecord(domain.Income, "alice", "1", "A", "2024-01-01"))
		s.append(s.newRecord(domain.Expense, "alice", "1", "B", "2024-01-01"))
	}

	var (
		g       errgroup.Group
		mu      sync.Mutex
		cleared domain.ClearResult
	)
	g.Go(func() error {
		res, err := s.repos.LedgerRepo.ClearByOwner(s.ctx, "alice")
		mu.Lock()
		cleared = res
		mu.Unlock()
		return err
	})
	g.Go(func() error {
		_, err := s.repos.LedgerRepo.Append(s.ctx, s.newRecord(domain.Expense, "alice", "1", "late", "2024-01-01"))
		return err
	})
	s.Require().NoError(g.Wait())

	income, expenses, err := s.repos.LedgerRepo.SnapshotByOwner(s.ctx, "alice")
	s.Require().NoError(err)
	s.Empty(income)
	s.Equal(int64(10), cleared.IncomeRemoved)
	// the late expense either landed before the clear (11 removed, 0 left) or after it (10 removed, 1 left)
	s.Equal(int64(11), cleared.ExpensesRemoved+int64(len(expenses)))
}
