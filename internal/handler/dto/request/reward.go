package request

type RequestRedemptionRequest struct {
	CatalogItemID int32 `json:"catalog_item_id" binding:"required"`
}

type ReviewRedemptionRequest struct {
	Notes *string `json:"notes,omitempty"`
}
