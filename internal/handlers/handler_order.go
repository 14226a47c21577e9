package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/dto"
	"github.com/SscSPs/etsy_atlas/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// orderHandler handles HTTP requests related to orders.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
}

func newOrderHandler(os portssvc.OrderSvcFacade) *orderHandler {
	return &orderHandler{orderService: os}
}

// RegisterOrderRoutes registers all order-related routes on an authenticated group.
func RegisterOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade) {
	h := newOrderHandler(orderService)

	orders := rg.Group("/orders")
	{
		orders.GET("", h.listOrders)
		orders.POST("", h.createOrder)
		orders.GET("/overview", h.overview)
		orders.GET("/export.xlsx", h.exportOrders)
		orders.GET("/:id", h.getOrder)
		orders.PUT("/:id", h.updateOrder)
		orders.DELETE("/:id", h.deleteOrder)
	}
}

// createOrder godoc
// @Summary Create an order
// @Description Records an order by hand. totalExpenses and profit are filled in by the recalculator.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Order details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create order"
// @Router /api/v1/orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		logger.Error("Session not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "code": apperrors.CodeNoSession})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req, *session)
	if err != nil {
		respondWithError(c, err, "create order")
		return
	}

	logger.Info("Order created successfully", slog.String("order_id", order.OrderID))
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// getOrder godoc
// @Summary Get an order by ID
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to retrieve order"
// @Router /api/v1/orders/{id} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	order, err := h.orderService.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "retrieve order")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// listOrders godoc
// @Summary List orders
// @Description Lists orders newest first with token pagination
// @Tags orders
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token returned by the previous page"
// @Param status query string false "Filter by status" Enums(Pending, Shipped, Delivered, Cancelled)
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list orders"
// @Router /api/v1/orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	orders, nextToken, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "list orders")
		return
	}

	logger.Debug("Orders listed", slog.Int("count", len(orders)))
	c.JSON(http.StatusOK, dto.ToListOrdersResponse(orders, nextToken))
}

// updateOrder godoc
// @Summary Update an order
// @Description Applies a partial update; omitted fields are left unchanged
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param order body dto.UpdateOrderRequest true "Fields to change"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to update order"
// @Router /api/v1/orders/{id} [put]
func (h *orderHandler) updateOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("id")

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	editorID, _ := middleware.GetUserIDFromContext(c)
	order, err := h.orderService.UpdateOrder(c.Request.Context(), orderID, req, editorID)
	if err != nil {
		respondWithError(c, err, "update order")
		return
	}

	logger.Info("Order updated successfully", slog.String("order_id", orderID))
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// deleteOrder godoc
// @Summary Delete an order
// @Tags orders
// @Param id path string true "Order ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to delete order"
// @Router /api/v1/orders/{id} [delete]
func (h *orderHandler) deleteOrder(c *gin.Context) {
	orderID := c.Param("id")
	if err := h.orderService.DeleteOrder(c.Request.Context(), orderID); err != nil {
		respondWithError(c, err, "delete order")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Order deleted", slog.String("order_id", orderID))
	c.Status(http.StatusNoContent)
}

// overview godoc
// @Summary Order overview
// @Description Revenue, expenses and profit across non-cancelled orders
// @Tags orders
// @Produce json
// @Success 200 {object} domain.OrderOverview
// @Failure 500 {object} map[string]string "Failed to compute overview"
// @Router /api/v1/orders/overview [get]
func (h *orderHandler) overview(c *gin.Context) {
	ov, err := h.orderService.Overview(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "compute overview")
		return
	}
	c.JSON(http.StatusOK, ov)
}

// exportOrders godoc
// @Summary Export orders
// @Description Downloads every order as an Excel workbook
// @Tags orders
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} map[string]string "Failed to export orders"
// @Router /api/v1/orders/export.xlsx [get]
func (h *orderHandler) exportOrders(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.orderService.ExportOrdersXLSX(c.Request.Context(), &buf); err != nil {
		respondWithError(c, err, "export orders")
		return
	}

	filename := "orders-" + time.Now().UTC().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
