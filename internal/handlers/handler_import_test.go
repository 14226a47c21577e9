package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/SscSPs/etsy_atlas/internal/dto"
	"github.com/SscSPs/etsy_atlas/internal/handlers"
	"github.com/SscSPs/etsy_atlas/internal/middleware"
	"github.com/SscSPs/etsy_atlas/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ImportHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	orderSvc *MockOrderService
}

func (suite *ImportHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.orderSvc = new(MockOrderService)
	handlers.RegisterImportRoutes(suite.router, suite.orderSvc)
}

func (suite *ImportHandlerTestSuite) post(body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/api/import/order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ImportHandlerTestSuite) TestNonPostIsMethodNotAllowed() {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req, _ := http.NewRequest(method, "/api/import/order", nil)
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)

		suite.Equal(http.StatusMethodNotAllowed, w.Code, method)
		suite.Equal(http.MethodPost, w.Header().Get("Allow"))
		suite.Contains(w.Body.String(), apperrors.CodeMethodNotAllowed)
	}
	suite.orderSvc.AssertNotCalled(suite.T(), "ImportOrder", mock.Anything, mock.Anything)
}

func (suite *ImportHandlerTestSuite) TestMissingRequiredFields() {
	bodies := []string{
		`{"etsyOrderId":"E-1"}`,
		`{"etsyOrderId":"E-1","orderPrice":0}`,
		`{"etsyOrderId":"E-1","orderPrice":"0.00"}`,
		`{"etsyOrderId":"E-1","orderPrice":"not-a-number"}`,
		`{"orderPrice":12.5}`,
		`{"etsyOrderId":"   ","orderPrice":12.5}`,
	}
	for _, body := range bodies {
		w := suite.post(body)

		suite.Equal(http.StatusBadRequest, w.Code, body)
		var resp map[string]string
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		suite.Equal("Bad Request: Missing etsyOrderId or orderPrice.", resp["error"])
	}
	suite.orderSvc.AssertNotCalled(suite.T(), "ImportOrder", mock.Anything, mock.Anything)
}

func (suite *ImportHandlerTestSuite) TestBodyMustBeObject() {
	for _, body := range []string{`[1,2]`, `not json`, `null`} {
		w := suite.post(body)
		suite.Equal(http.StatusBadRequest, w.Code, body)
	}
}

func (suite *ImportHandlerTestSuite) TestSuccessWithLooseTypes() {
	created := &domain.Order{OrderID: "order-123"}
	suite.orderSvc.On("ImportOrder", mock.Anything, mock.MatchedBy(func(req dto.ImportOrderRequest) bool {
		return req.EtsyOrderID == "3141592653" &&
			req.OrderPrice.Equal(decimal.RequireFromString("45.50")) &&
			req.OrderCost.Equal(decimal.NewFromInt(12)) &&
			req.ShippingCost.IsZero() &&
			req.OrderDate != nil
	})).Return(created, nil).Once()

	w := suite.post(`{"etsyOrderId":3141592653,"orderPrice":"45.50","orderCost":12,"orderDate":"2024-03-01T10:00:00Z","unknown":"ignored"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ImportOrderResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Order created successfully", resp.Message)
	suite.Equal("order-123", resp.OrderID)
	suite.orderSvc.AssertExpectations(suite.T())
}

func (suite *ImportHandlerTestSuite) TestServiceErrors() {
	suite.orderSvc.On("ImportOrder", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: status must be one of Pending, Shipped, Delivered, Cancelled", apperrors.ErrValidation)).Once()
	w := suite.post(`{"etsyOrderId":"E-2","orderPrice":10,"status":"Lost"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), apperrors.CodeValidation)

	suite.orderSvc.On("ImportOrder", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
	w = suite.post(`{"etsyOrderId":"E-3","orderPrice":10}`)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "db down")
	suite.Contains(w.Body.String(), apperrors.CodeInternal)
}

func (suite *ImportHandlerTestSuite) TestApiKeyGuard() {
	hash, err := utils.HashImportKey("s3cret")
	suite.Require().NoError(err)

	router := gin.New()
	handlers.RegisterImportRoutes(router, suite.orderSvc, middleware.ImportKeyAuth(hash))
	suite.orderSvc.On("ImportOrder", mock.Anything, mock.Anything).Return(&domain.Order{OrderID: "o-1"}, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/import/order", strings.NewReader(`{"etsyOrderId":"E-4","orderPrice":10}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(apperrors.CodeAuthFailed, body["code"])
	suite.Equal("Invalid or missing API key", body["error"])

	req, _ = http.NewRequest(http.MethodGet, "/api/import/order", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	suite.Equal(http.StatusMethodNotAllowed, w.Code)
	suite.Equal(http.MethodPost, w.Header().Get("Allow"))

	req, _ = http.NewRequest(http.MethodPost, "/api/import/order", strings.NewReader(`{"etsyOrderId":"E-4","orderPrice":10}`))
	req.Header.Set(middleware.ImportKeyHeader, "s3cret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	suite.Equal(http.StatusCreated, w.Code)
}

func TestImportHandler(t *testing.T) {
	suite.Run(t, new(ImportHandlerTestSuite))
}
