package userloop

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	moneyRe      = regexp.MustCompile(`^[0-9]+\.[0-9][0-9]$`)
	digitsRe     = regexp.MustCompile(`^[0-9]+$`)
	countRe      = regexp.MustCompile(`^[1-9][0-9]*$`)
	stockDeltaRe = regexp.MustCompile(`^(\+|-)?[0-9]+$`)
)

// FormatMoney renders minor units in the canonical <int>.<2 digits> form.
func FormatMoney(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// ParseMoney parses the canonical money form into minor units. The
// boolean is false when s does not match the expected shape.
func ParseMoney(s string) (int, bool) {
	if !moneyRe.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.Replace(s, ".", "", 1))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseStockDelta interprets a stock entry: a leading '+' increments the
// current value, anything else replaces it.
func ParseStockDelta(s string, current int) (int, bool) {
	if !stockDeltaRe.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
	if err != nil {
		return 0, false
	}
	if strings.HasPrefix(s, "+") {
		return current + n, true
	}
	return n, true
}

// SuggestSellPrice applies the configured margin to a buy price, rounded
// up to the next minor unit.
func SuggestSellPrice(buyPrice int, margin float64) int {
	return int(math.Ceil(float64(buyPrice) * (1 + margin)))
}

func formatMarginPercent(margin float64) string {
	return fmt.Sprintf("%d%%", int(math.Ceil(margin*100)))
}
