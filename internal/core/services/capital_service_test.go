package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/core/services"
	"github.com/SscSPs/etsy_atlas/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CapitalServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCapitalRepository
	service  portssvc.CapitalSvcFacade
}

func (suite *CapitalServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCapitalRepository)
	suite.service = services.NewCapitalService(suite.mockRepo)
}

func (suite *CapitalServiceTestSuite) TestCreateCapitalEntry_LockedByDefault() {
	ctx := context.Background()
	req := dto.CreateCapitalEntryRequest{Type: "Deposit", Amount: dec("500"), Source: "Owner savings"}

	suite.mockRepo.On("SaveCapitalEntry", ctx, mock.MatchedBy(func(e domain.CapitalEntry) bool {
		return e.Locked && e.Type == domain.CapitalDeposit && e.SubmittedBy == "admin-1" && e.Amount.Equal(dec("500"))
	})).Return(nil).Once()

	entry, err := suite.service.CreateCapitalEntry(ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.True(entry.Locked)
	suite.False(entry.TransactionDate.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CapitalServiceTestSuite) TestCreateCapitalEntry_Validation() {
	ctx := context.Background()
	cases := []dto.CreateCapitalEntryRequest{
		{Type: "payout", Amount: dec("1"), Source: "x"},
		{Type: "Deposit", Amount: dec("0"), Source: "x"},
		{Type: "Withdrawal", Amount: dec("5"), Source: "   "},
	}
	for _, req := range cases {
		_, err := suite.service.CreateCapitalEntry(ctx, req, "admin-1")
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCapitalEntry", mock.Anything, mock.Anything)
}

func (suite *CapitalServiceTestSuite) TestDeleteCapitalEntry_RejectsLocked() {
	ctx := context.Background()
	suite.mockRepo.On("FindCapitalEntryByID", ctx, "entry-1").Return(&domain.CapitalEntry{EntryID: "entry-1", Locked: true}, nil).Once()

	err := suite.service.DeleteCapitalEntry(ctx, "entry-1")

	suite.ErrorIs(err, apperrors.ErrLocked)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteCapitalEntry", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CapitalServiceTestSuite) TestDeleteCapitalEntry_Unlocked() {
	ctx := context.Background()
	suite.mockRepo.On("FindCapitalEntryByID", ctx, "entry-2").Return(&domain.CapitalEntry{EntryID: "entry-2"}, nil).Once()
	suite.mockRepo.On("DeleteCapitalEntry", ctx, "entry-2").Return(nil).Once()

	suite.NoError(suite.service.DeleteCapitalEntry(ctx, "entry-2"))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CapitalServiceTestSuite) TestDeleteCapitalEntry_StoreGuard() {
	ctx := context.Background()
	// Locked between read and delete; the store enforces it too.
	suite.mockRepo.On("FindCapitalEntryByID", ctx, "entry-3").Return(&domain.CapitalEntry{EntryID: "entry-3"}, nil).Once()
	suite.mockRepo.On("DeleteCapitalEntry", ctx, "entry-3").Return(apperrors.ErrLocked).Once()

	suite.ErrorIs(suite.service.DeleteCapitalEntry(ctx, "entry-3"), apperrors.ErrLocked)
}

func (suite *CapitalServiceTestSuite) TestDeleteCapitalEntry_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindCapitalEntryByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	suite.ErrorIs(suite.service.DeleteCapitalEntry(ctx, "missing"), apperrors.ErrNotFound)
}

func (suite *CapitalServiceTestSuite) TestSummary() {
	ctx := context.Background()
	sums := map[domain.CapitalType]decimal.Decimal{
		domain.CapitalDeposit:    dec("1000"),
		domain.CapitalWithdrawal: dec("250.50"),
	}
	suite.mockRepo.On("SumCapitalByType", ctx).Return(sums, 3, nil).Once()

	summary, err := suite.service.Summary(ctx)

	suite.Require().NoError(err)
	suite.True(summary.NetBalance.Equal(dec("749.50")))
	suite.Equal(3, summary.EntryCount)
}

func (suite *CapitalServiceTestSuite) TestListCapitalEntries_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("ListCapitalEntries", ctx, 50, 0).Return(nil, assert.AnError).Once()

	entries, err := suite.service.ListCapitalEntries(ctx, 50, 0)

	suite.Nil(entries)
	suite.ErrorIs(err, assert.AnError)
}

func TestCapitalService(t *testing.T) {
	suite.Run(t, new(CapitalServiceTestSuite))
}
