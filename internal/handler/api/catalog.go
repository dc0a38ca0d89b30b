package api

import (
	"errors"
	"net/http"

	"licoreria-api/internal/domain/catalog"
	reqdto "licoreria-api/internal/handler/dto/request"
	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/usecase/commands"
	"licoreria-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogCommands commands.CatalogCommands
	catalogQueries  queries.CatalogQueries
}

func NewCatalogHandler(catalogCommands commands.CatalogCommands, catalogQueries queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{
		catalogCommands: catalogCommands,
		catalogQueries:  catalogQueries,
	}
}

// @Summary List catalog
// @Description List sellable items, optionally filtered by kind, category or name
// @Tags catalog
// @Produce json
// @Param kind query string false "Item kind (product or cocktail)"
// @Param category query string false "Category filter"
// @Param search query string false "Name fragment"
// @Success 200 {array} queries.ItemView
// @Router /catalog [get]
func (h *CatalogHandler) List(c *gin.Context) {
	var filter queries.ItemFilter
	if kind := c.Query("kind"); kind != "" {
		if _, err := catalog.NewItemKind(kind); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid item kind",
			})
			return
		}
		filter.Kind = &kind
	}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}

	items, err := h.catalogQueries.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Get catalog item
// @Tags catalog
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} queries.ItemView
// @Failure 404 {object} map[string]string
// @Router /catalog/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.catalogQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Item not found",
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

// @Summary Create catalog item
// @Description Register a sellable item, pre-filled from external catalogs when possible
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateItemRequest true "Item request"
// @Success 201 {object} queries.ItemView
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /catalog [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req reqdto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	item, err := h.catalogCommands.CreateItem(c.Request.Context(), commands.CreateItemInput{
		Kind:      req.Kind,
		Name:      req.Name,
		Category:  req.Category,
		UnitPrice: req.UnitPrice,
		Stock:     req.Stock,
		Barcode:   req.Barcode,
	}, actorFrom(identity))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid item data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, item)
}

// @Summary Restock item
// @Tags catalog
// @Accept json
// @Security BearerAuth
// @Param kind path string true "Item kind"
// @Param id path string true "Item ID"
// @Param request body reqdto.RestockRequest true "Restock request"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /catalog/{kind}/{id}/restock [post]
func (h *CatalogHandler) Restock(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	kind, err := catalog.NewItemKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item kind",
		})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err = h.catalogCommands.Restock(c.Request.Context(), catalog.ItemRef{Kind: kind, ID: id}, req.Quantity, actorFrom(identity))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid restock quantity",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
