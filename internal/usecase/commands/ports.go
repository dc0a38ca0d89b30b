package commands

import (
	"context"

	"licoreria-api/internal/domain/catalog"

	"github.com/google/uuid"
)

// Actor is the authenticated principal a command runs on behalf of. The
// employee link is set for staff logins, the customer link for customer
// logins; handlers resolve both from the token before calling in.
type Actor struct {
	UserID     uuid.UUID
	CustomerID *uuid.UUID
	EmployeeID *uuid.UUID
}

// AuditRecorder receives append-only operation records. Implementations are
// fire-and-forget: recording never blocks or fails the business operation.
type AuditRecorder interface {
	Record(ctx context.Context, actorID uuid.UUID, action, module string, details map[string]any)
}

// CatalogLookup queries external catalogs (cocktail, food, barcode APIs)
// for prefill candidates when staff register a new item. Best effort only;
// a lookup failure never blocks item creation.
type CatalogLookup interface {
	Lookup(ctx context.Context, q LookupQuery) (*LookupCandidate, error)
}

type LookupQuery struct {
	Kind    catalog.ItemKind
	Name    string
	Barcode *string
}

type LookupCandidate struct {
	Barcode     *string
	Brand       *string
	ImageURL    *string
	Description *string
}
