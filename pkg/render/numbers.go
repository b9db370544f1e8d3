package render

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/NikitaCOEUR/stagebench/pkg/timing"
)

// Missing is shown for undefined values such as throughput of a zero run
const Missing = "-"

// Count groups thousands of n with sep
func Count(n uint64, sep string) string {
	if n <= math.MaxInt64 {
		return group(humanize.Comma(int64(n)), sep)
	}
	return group(humanize.BigComma(new(big.Int).SetUint64(n)), sep)
}

func group(s, sep string) string {
	if sep == "," {
		return s
	}
	return strings.ReplaceAll(s, ",", sep)
}

// Throughput rounds ops per second and groups thousands; NaN gives Missing
func Throughput(ops float64, sep string) string {
	if math.IsNaN(ops) || math.IsInf(ops, 0) || ops < 0 {
		return Missing
	}
	r := math.Round(ops)
	if r >= math.MaxUint64 {
		n, _ := new(big.Float).SetFloat64(r).Int(nil)
		return group(humanize.BigComma(n), sep)
	}
	return Count(uint64(r), sep)
}

// Percent formats a 0..1 ratio as "12.50 %"
func Percent(ratio float64) string {
	return fmt.Sprintf("%.2f %%", ratio*100)
}

// Factor formats a speed factor as "x2.40"; NaN gives Missing
func Factor(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing
	}
	return fmt.Sprintf("x%.2f", f)
}

// Duration formats d in unit with three decimals
func Duration(d time.Duration, unit timing.Unit) string {
	return fmt.Sprintf("%.3f", unit.Convert(d))
}
