package api

import (
	"errors"
	"net/http"

	"licoreria-api/internal/domain/cart"
	"licoreria-api/internal/domain/catalog"
	"licoreria-api/internal/domain/order"
	reqdto "licoreria-api/internal/handler/dto/request"
	resdto "licoreria-api/internal/handler/dto/response"
	"licoreria-api/internal/handler/session"
	"licoreria-api/internal/pkg/config"
	"licoreria-api/internal/pkg/cookie"
	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	store         *session.CartStore
	orderCommands commands.OrderCommands
	cookieCfg     config.CookieConfig
}

func NewCartHandler(store *session.CartStore, orderCommands commands.OrderCommands, cookieCfg config.CookieConfig) *CartHandler {
	return &CartHandler{
		store:         store,
		orderCommands: orderCommands,
		cookieCfg:     cookieCfg,
	}
}

// @Summary Get cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CartResponse
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	_, cartEntity := h.fetchCart(c)
	c.JSON(http.StatusOK, resdto.FromCart(cartEntity))
}

// @Summary Add to cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CartAddRequest true "Cart entry"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Router /cart/items [post]
func (h *CartHandler) Add(c *gin.Context) {
	var req reqdto.CartAddRequest
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

	_, cartEntity := h.fetchCart(c)
	cartEntity.Add(catalog.ItemRef{Kind: kind, ID: req.ItemID}, req.Quantity)
	c.JSON(http.StatusOK, resdto.FromCart(cartEntity))
}

// @Summary Remove from cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CartRemoveRequest true "Cart entry"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Router /cart/items/remove [post]
func (h *CartHandler) Remove(c *gin.Context) {
	var req reqdto.CartRemoveRequest
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

	_, cartEntity := h.fetchCart(c)
	cartEntity.Remove(catalog.ItemRef{Kind: kind, ID: req.ItemID})
	c.JSON(http.StatusOK, resdto.FromCart(cartEntity))
}

// @Summary Clear cart
// @Tags cart
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	_, cartEntity := h.fetchCart(c)
	cartEntity.Clear()
	c.Status(http.StatusNoContent)
}

// @Summary Checkout
// @Description Convert the session cart into an order
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} queries.OrderView
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
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

	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	mode, err := order.NewPaymentMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid payment mode",
		})
		return
	}

	sessionID, cartEntity := h.fetchCart(c)
	orderView, err := h.orderCommands.Checkout(c.Request.Context(), commands.CheckoutInput{
		CustomerID: *identity.CustomerID,
		Lines:      cartEntity.Lines(),
		Mode:       mode,
	}, actorFrom(identity))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
		case errors.Is(err, errs.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		case errors.Is(err, errs.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Customer not found",
			})
		case errors.Is(err, errs.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Insufficient stock",
			})
		case errors.Is(err, errs.ErrInsufficientCredit):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Insufficient store credit",
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
		return
	}

	h.store.Drop(sessionID)
	c.JSON(http.StatusCreated, orderView)
}

// fetchCart resolves the session cart and refreshes the session cookie.
func (h *CartHandler) fetchCart(c *gin.Context) (string, *cart.Cart) {
	sessionID, cartEntity := h.store.Fetch(cookie.GetCartSession(c))
	cookie.SetCartSessionCookie(c, h.cookieCfg, sessionID)
	return sessionID, cartEntity
}
