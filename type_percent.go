package stockbook

import (
	"fmt"
	"math"
)

// Percent is a rate of return or a share, in percent: 12.5 means 12.5%.
type Percent float64

// percentOf returns n out of total as a Percent, zero when total is zero.
func percentOf(n, total int) Percent {
	if total == 0 {
		return 0
	}
	return Percent(float64(n) * 100 / float64(total))
}

// Equal compares returns to a hundredth of a basis point.
func (p Percent) Equal(q Percent) bool {
	return math.Abs(float64(p-q)) < 0.0001
}

// cash share thresholds of total assets.
const (
	lowCashRatio  Percent = 10
	highCashRatio Percent = 80
)

// cashLevel qualifies p as the share of cash in total assets.
func (p Percent) cashLevel() CashLevel {
	switch {
	case p < lowCashRatio:
		return CashLow
	case p > highCashRatio:
		return CashHigh
	default:
		return CashNormal
	}
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

// SignedString shows a change: "+1.25%", "-0.50%", or "-" for no change.
func (p Percent) SignedString() string {
	if res := fmt.Sprintf("%+.2f%%", p); res != "+0.00%" && res != "-0.00%" {
		return res
	}
	return "-"
}
