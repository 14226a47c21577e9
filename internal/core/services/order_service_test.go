package services_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/core/services"
	"github.com/SscSPs/etsy_atlas/internal/dto"
	"github.com/SscSPs/etsy_atlas/internal/platform/config"
	"github.com/SscSPs/etsy_atlas/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

// OrderServiceTestSuite runs the order service against the in-memory store
// wired through the service container, triggers included.
type OrderServiceTestSuite struct {
	suite.Suite
	container *portssvc.ServiceContainer
	creator   domain.Session
}

func testConfig() *config.Config {
	return &config.Config{
		SessionSecret:         "test-secret",
		SessionIssuer:         "atlas-test",
		SessionExpiryDuration: 120 * time.Hour,
		DefaultNewUserRole:    "user",
	}
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.container = services.NewServiceContainer(testConfig(), memory.NewRepositoryProvider(), nil)
	suite.creator = domain.Session{UserID: "staff-1", Email: "staff@example.com"}
}

func (suite *OrderServiceTestSuite) createRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		EtsyOrderID:    "ORD100",
		OrderPrice:     dec("150"),
		OrderCost:      dec("70"),
		ShippingCost:   dec("15"),
		AdditionalFees: dec("5"),
	}
}

func (suite *OrderServiceTestSuite) TestCreateOrder_PopulatesDerivedFields() {
	ctx := context.Background()

	order, err := suite.container.Order.CreateOrder(ctx, suite.createRequest(), suite.creator)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderPending, order.Status)
	suite.Equal("staff-1", order.CreatedByUID)
	suite.Equal("staff@example.com", order.CreatedByEmail)
	suite.True(order.TotalExpenses.Valid)
	suite.True(order.TotalExpenses.Decimal.Equal(dec("90")))
	suite.True(order.Profit.Decimal.Equal(dec("60")))
}

func (suite *OrderServiceTestSuite) TestCreateOrder_RejectsNegativeAmounts() {
	req := suite.createRequest()
	req.ShippingCost = dec("-1")

	order, err := suite.container.Order.CreateOrder(context.Background(), req, suite.creator)

	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_RejectsUnknownStatus() {
	req := suite.createRequest()
	req.Status = "Lost"

	_, err := suite.container.Order.CreateOrder(context.Background(), req, suite.creator)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_RecomputesAndRecordsEditor() {
	ctx := context.Background()
	created, err := suite.container.Order.CreateOrder(ctx, suite.createRequest(), suite.creator)
	suite.Require().NoError(err)

	newCost := dec("100")
	shipped := string(domain.OrderShipped)
	updated, err := suite.container.Order.UpdateOrder(ctx, created.OrderID, dto.UpdateOrderRequest{OrderCost: &newCost, Status: &shipped}, "editor-1")

	suite.Require().NoError(err)
	suite.Equal(domain.OrderShipped, updated.Status)
	suite.Equal("editor-1", updated.EditedBy)
	suite.True(updated.TotalExpenses.Decimal.Equal(dec("120")))
	suite.True(updated.Profit.Decimal.Equal(dec("30")))
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_NotFound() {
	_, err := suite.container.Order.UpdateOrder(context.Background(), "missing", dto.UpdateOrderRequest{}, "editor-1")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestImportOrder_DefaultsAndPassthrough() {
	ctx := context.Background()

	order, err := suite.container.Order.ImportOrder(ctx, dto.ImportOrderRequest{
		EtsyOrderID:    "ORD200",
		OrderPrice:     dec("40"),
		CreatedByUID:   "zapier",
		CreatedByEmail: "hooks@example.com",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.OrderPending, order.Status)
	suite.Equal("zapier", order.CreatedByUID)
	suite.True(order.Profit.Decimal.Equal(dec("40")))
}

func (suite *OrderServiceTestSuite) TestImportOrder_RejectsUnknownStatus() {
	ctx := context.Background()

	_, err := suite.container.Order.ImportOrder(ctx, dto.ImportOrderRequest{
		EtsyOrderID: "ORD201",
		Status:      "Lost",
		OrderPrice:  dec("40"),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), `"Lost"`)

	orders, _, err := suite.container.Order.ListOrders(ctx, dto.ListOrdersParams{Limit: 10})
	suite.Require().NoError(err)
	suite.Empty(orders)

	order, err := suite.container.Order.ImportOrder(ctx, dto.ImportOrderRequest{
		EtsyOrderID: "ORD202",
		Status:      string(domain.OrderShipped),
		OrderPrice:  dec("40"),
	})
	suite.Require().NoError(err)
	suite.Equal(domain.OrderShipped, order.Status)
}

func (suite *OrderServiceTestSuite) TestImportOrder_RequiresEtsyOrderID() {
	_, err := suite.container.Order.ImportOrder(context.Background(), dto.ImportOrderRequest{OrderPrice: dec("1")})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *OrderServiceTestSuite) TestListOrders_FiltersByStatus() {
	ctx := context.Background()
	_, err := suite.container.Order.CreateOrder(ctx, suite.createRequest(), suite.creator)
	suite.Require().NoError(err)
	req := suite.createRequest()
	req.EtsyOrderID = "ORD101"
	req.Status = string(domain.OrderCancelled)
	_, err = suite.container.Order.CreateOrder(ctx, req, suite.creator)
	suite.Require().NoError(err)

	orders, next, err := suite.container.Order.ListOrders(ctx, dto.ListOrdersParams{Limit: 10, Status: string(domain.OrderCancelled)})

	suite.Require().NoError(err)
	suite.Nil(next)
	suite.Require().Len(orders, 1)
	suite.Equal("ORD101", orders[0].EtsyOrderID)

	_, _, err = suite.container.Order.ListOrders(ctx, dto.ListOrdersParams{Limit: 10, Status: "Lost"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *OrderServiceTestSuite) TestOverview_ExcludesCancelled() {
	ctx := context.Background()
	_, err := suite.container.Order.CreateOrder(ctx, suite.createRequest(), suite.creator)
	suite.Require().NoError(err)
	req := suite.createRequest()
	req.EtsyOrderID = "ORD102"
	req.Status = string(domain.OrderCancelled)
	_, err = suite.container.Order.CreateOrder(ctx, req, suite.creator)
	suite.Require().NoError(err)

	overview, err := suite.container.Order.Overview(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, overview.OrderCount)
	suite.True(overview.TotalRevenue.Equal(dec("150")))
	suite.True(overview.NetProfit.Equal(dec("60")))
	suite.Equal(1, overview.CountPerStatus[domain.OrderCancelled])
}

func (suite *OrderServiceTestSuite) TestExportOrdersXLSX() {
	ctx := context.Background()
	_, err := suite.container.Order.CreateOrder(ctx, suite.createRequest(), suite.creator)
	suite.Require().NoError(err)

	var buf bytes.Buffer
	suite.Require().NoError(suite.container.Order.ExportOrdersXLSX(ctx, &buf))

	f, err := excelize.OpenReader(&buf)
	suite.Require().NoError(err)
	defer f.Close()
	rows, err := f.GetRows("Orders")
	suite.Require().NoError(err)
	suite.Len(rows, 2)
}

func (suite *OrderServiceTestSuite) TestDeleteOrder() {
	ctx := context.Background()
	created, err := suite.container.Order.CreateOrder(ctx, suite.createRequest(), suite.creator)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.container.Order.DeleteOrder(ctx, created.OrderID))

	_, err = suite.container.Order.GetOrderByID(ctx, created.OrderID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.ErrorIs(suite.container.Order.DeleteOrder(ctx, created.OrderID), apperrors.ErrNotFound)
}

func TestOrderService(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func TestOrderService_SaveErrorIsWrapped(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := services.NewOrderService(repo)
	ctx := context.Background()

	repo.On("SaveOrder", ctx, mock.AnythingOfType("domain.Order")).Return(assert.AnError).Once()

	order, err := svc.CreateOrder(ctx, dto.CreateOrderRequest{EtsyOrderID: "X", OrderPrice: dec("1")}, domain.Session{})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, assert.AnError)
	repo.AssertExpectations(t)
}
