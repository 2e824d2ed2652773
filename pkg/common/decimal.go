package common

import (
	"github.com/govalues/decimal"
)

// Decimal rides along in scalars for the DECIMAL logical type. The
// aggregation dispatcher rejects it; it exists so the framework shares
// the engine's full scalar model.
type Decimal struct {
	decimal.Decimal
}

func (dec *Decimal) String() string {
	return dec.Decimal.String()
}

func (dec *Decimal) Equal(o *Decimal) bool {
	return dec.Decimal.Cmp(o.Decimal) == 0
}
