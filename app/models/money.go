package models

import "github.com/shopspring/decimal"

func init() {
	// the storefront reads amounts as numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}
