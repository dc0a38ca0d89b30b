package api

import (
	"errors"
	"net/http"

	reqdto "licoreria-api/internal/handler/dto/request"
	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/usecase/commands"
	"licoreria-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	rewardCommands commands.RewardCommands
	rewardQueries  queries.RewardQueries
}

func NewRewardHandler(rewardCommands commands.RewardCommands, rewardQueries queries.RewardQueries) *RewardHandler {
	return &RewardHandler{
		rewardCommands: rewardCommands,
		rewardQueries:  rewardQueries,
	}
}

// @Summary Reward catalog
// @Description List redeemable rewards and their point costs
// @Tags rewards
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.RewardCatalogItemView
// @Router /rewards/catalog [get]
func (h *RewardHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.rewardQueries.Catalog(c.Request.Context()))
}

// @Summary Request redemption
// @Description Open a pending redemption against the customer's point balance
// @Tags rewards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RequestRedemptionRequest true "Redemption request"
// @Success 201 {object} queries.RewardView
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /rewards [post]
func (h *RewardHandler) Request(c *gin.Context) {
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

	var req reqdto.RequestRedemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	rewardView, err := h.rewardCommands.RequestRedemption(c.Request.Context(), *identity.CustomerID, req.CatalogItemID, actorFrom(identity))
	if err != nil {
		h.respondRewardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rewardView)
}

// @Summary List my rewards
// @Tags rewards
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.RewardView
// @Failure 403 {object} map[string]string
// @Router /rewards [get]
func (h *RewardHandler) ListMine(c *gin.Context) {
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

	rewards, err := h.rewardQueries.ListByCustomer(c.Request.Context(), *identity.CustomerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, rewards)
}

// @Summary Get reward
// @Tags rewards
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reward ID"
// @Success 200 {object} queries.RewardView
// @Failure 404 {object} map[string]string
// @Router /rewards/{id} [get]
func (h *RewardHandler) Get(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rewardView, err := h.rewardQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reward not found",
		})
		return
	}
	if identity.CustomerID != nil && rewardView.CustomerID != *identity.CustomerID {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reward not found",
		})
		return
	}

	c.JSON(http.StatusOK, rewardView)
}

// @Summary Approve redemption
// @Description Confirm a pending redemption and issue the counter code
// @Tags rewards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reward ID"
// @Param request body reqdto.ReviewRedemptionRequest false "Review notes"
// @Success 200 {object} queries.RewardView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rewards/{id}/approve [post]
func (h *RewardHandler) Approve(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Body is optional; a missing or malformed body just means no notes.
	var req reqdto.ReviewRedemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Notes = nil
	}

	rewardView, err := h.rewardCommands.Approve(c.Request.Context(), id, req.Notes, actorFrom(identity))
	if err != nil {
		h.respondRewardError(c, err)
		return
	}

	c.JSON(http.StatusOK, rewardView)
}

// @Summary Reject redemption
// @Description Close a pending redemption and release its held points
// @Tags rewards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reward ID"
// @Param request body reqdto.ReviewRedemptionRequest false "Review notes"
// @Success 200 {object} queries.RewardView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rewards/{id}/reject [post]
func (h *RewardHandler) Reject(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.ReviewRedemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Notes = nil
	}

	rewardView, err := h.rewardCommands.Reject(c.Request.Context(), id, req.Notes, actorFrom(identity))
	if err != nil {
		h.respondRewardError(c, err)
		return
	}

	c.JSON(http.StatusOK, rewardView)
}

// @Summary Confirm reward delivery
// @Tags rewards
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reward ID"
// @Success 200 {object} queries.RewardView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rewards/{id}/confirm [post]
func (h *RewardHandler) ConfirmDelivery(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rewardView, err := h.rewardCommands.ConfirmDelivery(c.Request.Context(), id, actorFrom(identity))
	if err != nil {
		h.respondRewardError(c, err)
		return
	}

	c.JSON(http.StatusOK, rewardView)
}

func (h *RewardHandler) respondRewardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrRewardNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reward not found",
		})
	case errors.Is(err, errs.ErrRewardItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reward catalog item not found",
		})
	case errors.Is(err, errs.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Customer not found",
		})
	case errors.Is(err, errs.ErrInsufficientPoints):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Insufficient points",
		})
	case errors.Is(err, errs.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Reward state does not allow this operation",
		})
	case errors.Is(err, errs.ErrDuplicateRedemptionCode):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Redemption code collision, retry",
		})
	case errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid reward data",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
