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

type FineHandler struct {
	fineCommands commands.FineCommands
	fineQueries  queries.FineQueries
}

func NewFineHandler(fineCommands commands.FineCommands, fineQueries queries.FineQueries) *FineHandler {
	return &FineHandler{
		fineCommands: fineCommands,
		fineQueries:  fineQueries,
	}
}

// @Summary Impose fine
// @Description Open a standalone fine against a customer
// @Tags fines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ImposeFineRequest true "Fine request"
// @Success 201 {object} queries.FineView
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /fines [post]
func (h *FineHandler) Impose(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req reqdto.ImposeFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	fineView, err := h.fineCommands.Impose(c.Request.Context(), commands.ImposeFineInput{
		CustomerID:  req.CustomerID,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Description: req.Description,
	}, actorFrom(identity))
	if err != nil {
		h.respondFineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, fineView)
}

// @Summary Pay fine
// @Description Settle a single fine outside any order cascade
// @Tags fines
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fine ID"
// @Success 200 {object} queries.FineView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /fines/{id}/pay [post]
func (h *FineHandler) Pay(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fineView, err := h.fineCommands.Pay(c.Request.Context(), id, actorFrom(identity))
	if err != nil {
		h.respondFineError(c, err)
		return
	}

	c.JSON(http.StatusOK, fineView)
}

// @Summary List my fines
// @Tags fines
// @Produce json
// @Security BearerAuth
// @Param unpaid query bool false "Only unpaid fines"
// @Success 200 {array} queries.FineView
// @Failure 403 {object} map[string]string
// @Router /fines [get]
func (h *FineHandler) ListMine(c *gin.Context) {
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

	onlyUnpaid := c.Query("unpaid") == "true"
	fines, err := h.fineQueries.ListByCustomer(c.Request.Context(), *identity.CustomerID, onlyUnpaid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, fines)
}

// @Summary Get fine
// @Tags fines
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fine ID"
// @Success 200 {object} queries.FineView
// @Failure 404 {object} map[string]string
// @Router /fines/{id} [get]
func (h *FineHandler) Get(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fineView, err := h.fineQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Fine not found",
		})
		return
	}
	if identity.CustomerID != nil && fineView.CustomerID != *identity.CustomerID {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Fine not found",
		})
		return
	}

	c.JSON(http.StatusOK, fineView)
}

func (h *FineHandler) respondFineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrFineNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Fine not found",
		})
	case errors.Is(err, errs.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Customer not found",
		})
	case errors.Is(err, errs.ErrFineAlreadyPaid):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Fine already paid",
		})
	case errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid fine data",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
