package api

import (
	"errors"
	"net/http"

	reqdto "licoreria-api/internal/handler/dto/request"
	resdto "licoreria-api/internal/handler/dto/response"
	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/usecase/commands"
	"licoreria-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerCommands commands.CustomerCommands
	loyaltyQueries   queries.LoyaltyQueries
}

func NewCustomerHandler(customerCommands commands.CustomerCommands, loyaltyQueries queries.LoyaltyQueries) *CustomerHandler {
	return &CustomerHandler{
		customerCommands: customerCommands,
		loyaltyQueries:   loyaltyQueries,
	}
}

// @Summary Register customer
// @Description Create a customer account with its login
// @Tags customers
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterCustomerRequest true "Registration request"
// @Success 201 {object} resdto.RegisterCustomerResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /customers [post]
func (h *CustomerHandler) Register(c *gin.Context) {
	var req reqdto.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.customerCommands.Register(c.Request.Context(), commands.RegisterCustomerInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Email already registered",
			})
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid registration data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.RegisterCustomerResponse{
		CustomerID: result.CustomerID,
		UserID:     result.UserID,
		Code:       result.Code,
	})
}

// @Summary Loyalty summary
// @Description Points, credit position and fine warnings for the current customer
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.LoyaltySummary
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /customers/me/loyalty [get]
func (h *CustomerHandler) MyLoyalty(c *gin.Context) {
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

	summary, err := h.loyaltyQueries.Summary(c.Request.Context(), *identity.CustomerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}
