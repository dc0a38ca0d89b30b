package catalog

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidItemKind = errors.New("invalid item kind")

// ItemKind distinguishes the two sellable variants. A line item references
// exactly one of them, never both.
type ItemKind string

const (
	KindProduct  ItemKind = "product"
	KindCocktail ItemKind = "cocktail"
)

func (k ItemKind) String() string {
	return string(k)
}

func (k ItemKind) IsValid() bool {
	return k == KindProduct || k == KindCocktail
}

func NewItemKind(s string) (ItemKind, error) {
	kind := ItemKind(s)
	if !kind.IsValid() {
		return "", ErrInvalidItemKind
	}
	return kind, nil
}

// ItemRef is the (kind, id) pair the cart and checkout boundary speak in.
type ItemRef struct {
	Kind ItemKind
	ID   uuid.UUID
}
