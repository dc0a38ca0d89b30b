package api

import (
	"errors"
	"net/http"

	"licoreria-api/internal/domain/cart"
	"licoreria-api/internal/domain/catalog"
	reqdto "licoreria-api/internal/handler/dto/request"
	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/usecase/commands"
	"licoreria-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderCommands commands.OrderCommands
	orderQueries  queries.OrderQueries
}

func NewOrderHandler(orderCommands commands.OrderCommands, orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		orderCommands: orderCommands,
		orderQueries:  orderQueries,
	}
}

// @Summary Get order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} queries.OrderView
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	orderView, err := h.orderQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}
	// Customers see only their own orders; staff see all.
	if identity.CustomerID != nil && orderView.CustomerID != *identity.CustomerID {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, orderView)
}

// @Summary List my orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.OrderListItem
// @Failure 403 {object} map[string]string
// @Router /orders [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	if identity.CustomerID == nil {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Customer account required",
		})
		return
	}

	items, err := h.orderQueries.ListByCustomer(c.Request.Context(), *identity.CustomerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Approve order
// @Description Move a requested credit order to on_loan
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} queries.OrderView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/approve [post]
func (h *OrderHandler) Approve(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	orderView, err := h.orderCommands.Approve(c.Request.Context(), id, actorFrom(identity))
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderView)
}

// @Summary Cancel order
// @Description Restore stock and delete the order record
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id} [delete]
func (h *OrderHandler) Cancel(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Customers may only cancel their own orders.
	if identity.CustomerID != nil {
		orderView, err := h.orderQueries.GetByID(c.Request.Context(), id)
		if err != nil || orderView.CustomerID != *identity.CustomerID {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
	}

	if err := h.orderCommands.Cancel(c.Request.Context(), id, actorFrom(identity)); err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Mark order paid
// @Description Settle the order, grant loyalty increments and cascade to linked fines
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} queries.OrderView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/pay [post]
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	orderView, err := h.orderCommands.MarkPaid(c.Request.Context(), id, actorFrom(identity))
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderView)
}

// @Summary Apply fine to order
// @Description Add a penalty surcharge and open a linked fine record
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.ApplyFineRequest true "Fine request"
// @Success 200 {object} queries.OrderView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /orders/{id}/fines [post]
func (h *OrderHandler) ApplyFine(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.ApplyFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	orderView, err := h.orderCommands.ApplyFine(c.Request.Context(), commands.ApplyFineInput{
		OrderID:     id,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Description: req.Description,
	}, actorFrom(identity))
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderView)
}

// @Summary Add order line
// @Description Add a line to a requested order, reserving stock
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.AddLineRequest true "Line request"
// @Success 200 {object} queries.OrderView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/lines [post]
func (h *OrderHandler) AddLine(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	kind, err := catalog.NewItemKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item kind",
		})
		return
	}

	orderView, err := h.orderCommands.AddLine(c.Request.Context(), id, cart.Line{
		Kind:   kind,
		ItemID: req.ItemID,
		Qty:    req.Quantity,
	}, actorFrom(identity))
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderView)
}

// @Summary Remove order line
// @Description Remove a line from a requested order, restoring stock
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param lineId path string true "Line ID"
// @Success 200 {object} queries.OrderView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/lines/{lineId} [delete]
func (h *OrderHandler) RemoveLine(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	lineID, ok := parseIDParam(c, "lineId")
	if !ok {
		return
	}

	orderView, err := h.orderCommands.RemoveLine(c.Request.Context(), id, lineID, actorFrom(identity))
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderView)
}

func (h *OrderHandler) respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
	case errors.Is(err, errs.ErrOrderLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order line not found",
		})
	case errors.Is(err, errs.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Item not found",
		})
	case errors.Is(err, errs.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Order state does not allow this operation",
		})
	case errors.Is(err, errs.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Insufficient stock",
		})
	case errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid order data",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
