package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/dto"
	"github.com/SscSPs/etsy_atlas/internal/middleware"
	"github.com/SscSPs/etsy_atlas/internal/utils"
	"github.com/gin-gonic/gin"
)

const maxImportBodyBytes = 1 << 20

type importHandler struct {
	orderService portssvc.OrderWriterSvc
}

// RegisterImportRoutes mounts the order import webhook. Every method is routed
// to the handler so that non-POST requests get a 405 instead of a 404.
func RegisterImportRoutes(r gin.IRouter, orderService portssvc.OrderWriterSvc, guards ...gin.HandlerFunc) {
	h := &importHandler{orderService: orderService}
	r.Any("/api/import/order", append(guards, h.importOrder)...)
}

// parseImportPayload normalises a loosely typed webhook body.
// ok is false when etsyOrderId or a non-zero orderPrice is missing.
func parseImportPayload(raw map[string]any, logger *slog.Logger) (dto.ImportOrderRequest, bool) {
	req := dto.ImportOrderRequest{
		EtsyOrderID:    utils.LenientString(raw["etsyOrderId"]),
		Status:         utils.LenientString(raw["status"]),
		Notes:          utils.LenientString(raw["notes"]),
		TrackingNumber: utils.LenientString(raw["trackingNumber"]),
		CreatedByUID:   utils.LenientString(raw["createdByUid"]),
		CreatedByEmail: utils.LenientString(raw["createdByEmail"]),
	}

	price, hasPrice := utils.ParseLenientDecimal(raw["orderPrice"])
	req.OrderPrice = price
	req.OrderCost, _ = utils.ParseLenientDecimal(raw["orderCost"])
	req.ShippingCost, _ = utils.ParseLenientDecimal(raw["shippingCost"])
	req.AdditionalFees, _ = utils.ParseLenientDecimal(raw["additionalFees"])

	if s := utils.LenientString(raw["orderDate"]); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			req.OrderDate = &t
		} else {
			logger.Warn("Ignoring unparseable orderDate on import", slog.String("order_date", s))
		}
	}

	ok := req.EtsyOrderID != "" && hasPrice && !price.IsZero()
	return req, ok
}

// importOrder godoc
// @Summary Import an order
// @Description Creates an order from an external JSON payload. Derived fields are filled in asynchronously by the recalculator.
// @Tags import
// @Accept json
// @Produce json
// @Param x-api-key header string false "Import API key"
// @Param order body map[string]interface{} true "Order payload; etsyOrderId and orderPrice are required"
// @Success 201 {object} dto.ImportOrderResponse
// @Failure 400 {object} map[string]string "Missing etsyOrderId or orderPrice"
// @Failure 401 {object} map[string]string "Invalid API key"
// @Failure 405 {object} map[string]string "Method Not Allowed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/import/order [post]
func (h *importHandler) importOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if c.Request.Method != http.MethodPost {
		c.Header("Allow", http.MethodPost)
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method Not Allowed", "code": apperrors.CodeMethodNotAllowed})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBodyBytes))
	if err != nil {
		logger.Error("Failed to read import body", slog.String("error", err.Error()))
		internalError(c)
		return
	}

	var raw map[string]any
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil || raw == nil {
		logger.Warn("Import body is not a JSON object")
		rejectImport(c, "Bad Request: body must be a JSON object")
		return
	}
	logger.Info("Received order data for import", slog.Any("etsy_order_id", raw["etsyOrderId"]))

	req, ok := parseImportPayload(raw, logger)
	if !ok {
		logger.Warn("Validation failed: missing required fields")
		rejectImport(c, "Bad Request: Missing etsyOrderId or orderPrice.")
		return
	}

	order, err := h.orderService.ImportOrder(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Imported order rejected", slog.String("error", err.Error()))
			rejectImport(c, "Bad Request: "+err.Error())
			return
		}
		logger.Error("Error creating imported order", slog.String("error", err.Error()))
		internalError(c)
		return
	}

	logger.Info("Successfully created order", slog.String("order_id", order.OrderID))
	c.JSON(http.StatusCreated, dto.ImportOrderResponse{Message: "Order created successfully", OrderID: order.OrderID})
}

func rejectImport(c *gin.Context, msg string) {
	appErr := apperrors.NewBadRequestError(msg)
	c.JSON(appErr.Code, appErr)
}

func internalError(c *gin.Context) {
	appErr := apperrors.NewInternalServerError("Internal Server Error")
	c.JSON(appErr.Code, appErr)
}
