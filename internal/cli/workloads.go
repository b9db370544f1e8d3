package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/NikitaCOEUR/stagebench/pkg/bench"
)

// workload is one named stage of the compare demo
type workload struct {
	name string
	run  func(i uint64) bool
}

// formatWorkloads compares ways of turning an integer into a string. The
// parse stage fails on every tenth input.
func formatWorkloads() []workload {
	return []workload{
		{"sprintf", func(i uint64) bool {
			bench.Keep(fmt.Sprintf("%d", i))
			return true
		}},
		{"strconv", func(i uint64) bool {
			bench.Keep(strconv.FormatUint(i, 10))
			return true
		}},
		{"builder", func(i uint64) bool {
			var b strings.Builder
			b.WriteString(strconv.FormatUint(i, 10))
			bench.Keep(b.String())
			return true
		}},
		{"parse", func(i uint64) bool {
			s := strconv.FormatUint(i, 10)
			if i%10 == 9 {
				s += "x"
			}
			_, err := strconv.ParseUint(s, 10, 64)
			return err == nil
		}},
	}
}

// sample fills a slice with a deterministic pseudo random sequence
func sample(n int, seed uint64) []uint64 {
	out := make([]uint64, n)
	x := seed | 1
	for i := range out {
		x ^= x << 13
		x ^= x >> 7
		x ^= x << 17
		out[i] = x
	}
	return out
}

func sum(values []uint64) uint64 {
	var total uint64
	for _, v := range values {
		total += v
	}
	return total
}

func sortCopy(values []uint64) []uint64 {
	out := slices.Clone(values)
	slices.Sort(out)
	return out
}
