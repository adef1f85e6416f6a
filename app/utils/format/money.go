package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var usd = accounting.DefaultAccounting("$", 2)

// Money renders an amount as "$1,234.50". Unknown types render as $0.00.
func Money(amount interface{}) string {
	var decAmount decimal.Decimal
	switch v := amount.(type) {
	case decimal.Decimal:
		decAmount = v
	case float64:
		decAmount = decimal.NewFromFloat(v)
	case int:
		decAmount = decimal.NewFromInt(int64(v))
	case int64:
		decAmount = decimal.NewFromInt(v)
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return usd.FormatMoneyDecimal(decimal.Zero)
		}
		decAmount = parsed
	default:
		return usd.FormatMoneyDecimal(decimal.Zero)
	}
	return usd.FormatMoneyDecimal(decAmount)
}

// Plain renders an amount without the currency symbol, as "1,234.50".
func Plain(amount decimal.Decimal) string {
	return accounting.FormatNumberDecimal(amount, 2, ",", ".")
}
