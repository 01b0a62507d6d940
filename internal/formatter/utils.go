package formatter

import (
	"fmt"
	"math"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// percentOf returns count as a rounded percentage of total
func percentOf(count, total int) int {
	return int(math.Round(100 * float64(count) / float64(total)))
}
