package journal

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// dec converts an optional amount, treating nil as zero.
func dec(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

// ratio returns num/den rounded half away from zero to two places, or zero when den is zero.
func ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.DivRound(den, 2)
}

// percent returns part/whole*100 rounded to two places, or zero when whole is zero.
func percent(part, whole int) decimal.Decimal {
	return ratio(decimal.NewFromInt(int64(part)).Mul(hundred), decimal.NewFromInt(int64(whole)))
}

func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
