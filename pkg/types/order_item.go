package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a line item snapshot taken at order time. Product name and
// price are copied so later catalog edits do not rewrite order history.
type OrderItem struct {
	ProductID   uuid.UUID       `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Variant     string          `json:"variant,omitempty"`
}
