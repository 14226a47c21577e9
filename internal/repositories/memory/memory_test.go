package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MemoryStoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	repos portsrepo.RepositoryProvider
	base  time.Time
}

func (s *MemoryStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = NewRepositoryProvider()
	s.base = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
}

func (s *MemoryStoreTestSuite) order(id string, offset time.Duration) domain.Order {
	at := s.base.Add(offset)
	return domain.Order{
		OrderID:     id,
		EtsyOrderID: "E-" + id,
		OrderDate:   at,
		Status:      domain.OrderPending,
		OrderPrice:  decimal.NewFromInt(100),
		AuditFields: domain.AuditFields{CreatedAt: at, UpdatedAt: at},
	}
}

func (s *MemoryStoreTestSuite) TestOrderPagination() {
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.repos.OrderRepo.SaveOrder(s.ctx, s.order(fmt.Sprintf("o%d", i), time.Duration(i)*time.Hour)))
	}

	page1, next, err := s.repos.OrderRepo.ListOrders(s.ctx, domain.OrderFilter{}, 2, nil)
	s.Require().NoError(err)
	s.Require().NotNil(next)
	s.Equal([]string{"o4", "o3"}, ids(page1))

	page2, next, err := s.repos.OrderRepo.ListOrders(s.ctx, domain.OrderFilter{}, 2, next)
	s.Require().NoError(err)
	s.Require().NotNil(next)
	s.Equal([]string{"o2", "o1"}, ids(page2))

	page3, next, err := s.repos.OrderRepo.ListOrders(s.ctx, domain.OrderFilter{}, 2, next)
	s.Require().NoError(err)
	s.Nil(next)
	s.Equal([]string{"o0"}, ids(page3))
}

func (s *MemoryStoreTestSuite) TestOrderPagination_SameTimestampUsesID() {
	s.Require().NoError(s.repos.OrderRepo.SaveOrder(s.ctx, s.order("a", 0)))
	s.Require().NoError(s.repos.OrderRepo.SaveOrder(s.ctx, s.order("b", 0)))

	page1, next, err := s.repos.OrderRepo.ListOrders(s.ctx, domain.OrderFilter{}, 1, nil)
	s.Require().NoError(err)
	page2, _, err := s.repos.OrderRepo.ListOrders(s.ctx, domain.OrderFilter{}, 1, next)
	s.Require().NoError(err)
	s.Equal([]string{"b"}, ids(page1))
	s.Equal([]string{"a"}, ids(page2))
}

func (s *MemoryStoreTestSuite) TestListOrders_BadToken() {
	bad := "not-a-token"
	_, _, err := s.repos.OrderRepo.ListOrders(s.ctx, domain.OrderFilter{}, 10, &bad)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *MemoryStoreTestSuite) TestListAllOrders_Filter() {
	shipped := s.order("s", time.Hour)
	shipped.Status = domain.OrderShipped
	s.Require().NoError(s.repos.OrderRepo.SaveOrder(s.ctx, shipped))
	s.Require().NoError(s.repos.OrderRepo.SaveOrder(s.ctx, s.order("p", 0)))

	status := domain.OrderShipped
	got, err := s.repos.OrderRepo.ListAllOrders(s.ctx, domain.OrderFilter{Status: &status})
	s.Require().NoError(err)
	s.Equal([]string{"s"}, ids(got))
}

func (s *MemoryStoreTestSuite) TestMergeOrderFields_LeavesOtherFields() {
	o := s.order("m", 0)
	o.Notes = "keep me"
	s.Require().NoError(s.repos.OrderRepo.SaveOrder(s.ctx, o))

	expenses := decimal.NewFromInt(10)
	editedAt := s.base.Add(time.Minute)
	err := s.repos.OrderRepo.MergeOrderFields(s.ctx, "m", domain.OrderFieldPatch{TotalExpenses: &expenses, EditedAt: &editedAt})
	s.Require().NoError(err)

	got, err := s.repos.OrderRepo.FindOrderByID(s.ctx, "m")
	s.Require().NoError(err)
	s.True(got.TotalExpenses.Valid)
	s.True(expenses.Equal(got.TotalExpenses.Decimal))
	s.False(got.Profit.Valid)
	s.Equal("keep me", got.Notes)
	s.Require().NotNil(got.EditedAt)
	s.True(editedAt.Equal(*got.EditedAt))

	s.ErrorIs(s.repos.OrderRepo.MergeOrderFields(s.ctx, "missing", domain.OrderFieldPatch{}), apperrors.ErrNotFound)
}

func (s *MemoryStoreTestSuite) TestUpdateOrder_PreservesDerivedFields() {
	s.Require().NoError(s.repos.OrderRepo.SaveOrder(s.ctx, s.order("u", 0)))
	profit := decimal.NewFromInt(100)
	s.Require().NoError(s.repos.OrderRepo.MergeOrderFields(s.ctx, "u", domain.OrderFieldPatch{Profit: &profit}))

	update := s.order("u", 0)
	update.Notes = "changed"
	s.Require().NoError(s.repos.OrderRepo.UpdateOrder(s.ctx, update))

	got, err := s.repos.OrderRepo.FindOrderByID(s.ctx, "u")
	s.Require().NoError(err)
	s.Equal("changed", got.Notes)
	s.True(got.Profit.Valid)
}

func (s *MemoryStoreTestSuite) TestFindOrder_ReturnsCopy() {
	s.Require().NoError(s.repos.OrderRepo.SaveOrder(s.ctx, s.order("c", 0)))
	got, err := s.repos.OrderRepo.FindOrderByID(s.ctx, "c")
	s.Require().NoError(err)
	got.Notes = "mutated"

	again, err := s.repos.OrderRepo.FindOrderByID(s.ctx, "c")
	s.Require().NoError(err)
	s.Empty(again.Notes)
}

func (s *MemoryStoreTestSuite) TestCapitalDelete_RejectsLocked() {
	locked := domain.CapitalEntry{EntryID: "c1", Type: domain.CapitalDeposit, Amount: decimal.NewFromInt(5000), Source: "Loan", Locked: true}
	open := domain.CapitalEntry{EntryID: "c2", Type: domain.CapitalWithdrawal, Amount: decimal.NewFromInt(800), Source: "Dividend"}
	s.Require().NoError(s.repos.CapitalRepo.SaveCapitalEntry(s.ctx, locked))
	s.Require().NoError(s.repos.CapitalRepo.SaveCapitalEntry(s.ctx, open))

	s.ErrorIs(s.repos.CapitalRepo.DeleteCapitalEntry(s.ctx, "c1"), apperrors.ErrLocked)
	_, err := s.repos.CapitalRepo.FindCapitalEntryByID(s.ctx, "c1")
	s.NoError(err, "locked entry must survive")

	s.NoError(s.repos.CapitalRepo.DeleteCapitalEntry(s.ctx, "c2"))
	s.ErrorIs(s.repos.CapitalRepo.DeleteCapitalEntry(s.ctx, "c2"), apperrors.ErrNotFound)
}

func (s *MemoryStoreTestSuite) TestSumCapitalByType() {
	s.Require().NoError(s.repos.CapitalRepo.SaveCapitalEntry(s.ctx, domain.CapitalEntry{EntryID: "a", Type: domain.CapitalDeposit, Amount: decimal.NewFromInt(5000)}))
	s.Require().NoError(s.repos.CapitalRepo.SaveCapitalEntry(s.ctx, domain.CapitalEntry{EntryID: "b", Type: domain.CapitalDeposit, Amount: decimal.RequireFromString("1250.75")}))
	s.Require().NoError(s.repos.CapitalRepo.SaveCapitalEntry(s.ctx, domain.CapitalEntry{EntryID: "c", Type: domain.CapitalWithdrawal, Amount: decimal.NewFromInt(800)}))

	sums, count, err := s.repos.CapitalRepo.SumCapitalByType(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, count)
	s.True(decimal.RequireFromString("6250.75").Equal(sums[domain.CapitalDeposit]))
	s.True(decimal.NewFromInt(800).Equal(sums[domain.CapitalWithdrawal]))
}

func (s *MemoryStoreTestSuite) TestUserLifecycle() {
	u := domain.User{UserID: "u1", Email: "a@b.c", Role: domain.RoleAdmin, CreatedAt: s.base}
	s.Require().NoError(s.repos.UserRepo.SaveUser(s.ctx, u))
	s.ErrorIs(s.repos.UserRepo.SaveUser(s.ctx, u), apperrors.ErrDuplicate)

	login := s.base.Add(time.Hour)
	s.Require().NoError(s.repos.UserRepo.TouchLastLogin(s.ctx, "u1", login))
	s.Require().NoError(s.repos.UserRepo.RevokeSessions(s.ctx, "u1", login))

	got, err := s.repos.UserRepo.FindUserByID(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().NotNil(got.LastLoginAt)
	s.Require().NotNil(got.SessionsRevokedAt)

	count, err := s.repos.UserRepo.CountUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)

	s.NoError(s.repos.UserRepo.DeleteUser(s.ctx, "u1"))
	s.ErrorIs(s.repos.UserRepo.TouchLastLogin(s.ctx, "u1", login), apperrors.ErrNotFound)
}

func (s *MemoryStoreTestSuite) TestSeedBatch_IsAtomic() {
	s.Require().NoError(s.repos.OrderRepo.SaveOrder(s.ctx, s.order("dup", 0)))

	users := []domain.User{{UserID: "seed-user"}}
	orders := []domain.Order{s.order("new", 0), s.order("dup", 0)}
	err := s.repos.SeedRepo.SeedBatch(s.ctx, users, orders)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	count, _ := s.repos.UserRepo.CountUsers(s.ctx)
	s.Equal(0, count, "no user may be written when the batch fails")
	_, err = s.repos.OrderRepo.FindOrderByID(s.ctx, "new")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *MemoryStoreTestSuite) TestProductsSortedAndPaged() {
	for _, name := range []string{"Mug", "Candle", "Scarf"} {
		s.Require().NoError(s.repos.ProductRepo.SaveProduct(s.ctx, domain.Product{ProductID: name, Name: name}))
	}
	got, err := s.repos.ProductRepo.ListProducts(s.ctx, 2, 1)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("Mug", got[0].Name)
	s.Equal("Scarf", got[1].Name)

	got, err = s.repos.ProductRepo.ListProducts(s.ctx, 10, 10)
	s.Require().NoError(err)
	s.Empty(got)
}

func TestMemoryStoreTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreTestSuite))
}

func ids(orders []domain.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.OrderID
	}
	return out
}

func TestClampPage(t *testing.T) {
	start, end := clampPage(0, -5, 50)
	require.Equal(t, 0, start)
	assert.Equal(t, 20, end)

	start, end = clampPage(10, 45, 50)
	assert.Equal(t, 45, start)
	assert.Equal(t, 50, end)
}
