package statement

import "github.com/shopspring/decimal"

// OperationInput is the body of deposit, withdraw and transfer requests.
// Amount accepts a JSON number or a numeric string in minor units.
type OperationInput struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"required,max=255"`
}
