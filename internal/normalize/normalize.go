// Package normalize turns the loosely typed price, fee, ETA, rating and price tier
// fields of scraped restaurant documents into stable values.
//
// Two families exist. Display* keeps whatever it cannot parse so clients still see
// the original text. *Amount always yields a number and is what pricing uses.
package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	feePattern      = regexp.MustCompile(`\$?(\d+\.?\d*)`)
	pricePattern    = regexp.MustCompile(`(\d+\.?\d*)`)
	etaPattern      = regexp.MustCompile(`(\d+)\s*min`)
	digitsPattern   = regexp.MustCompile(`(\d+)`)
	thousandsSuffix = "k+"
)

// DisplayDeliveryFee parses fees such as "$2.99" or "$0 delivery fee, first order".
// Numbers pass through as float64, nil stays nil and unparseable text is returned unchanged.
func DisplayDeliveryFee(v any) any {
	return display(v, feePattern)
}

// DisplayPrice parses prices such as "$$16.99" or "16.99" with the same fallback as DisplayDeliveryFee.
func DisplayPrice(v any) any {
	return display(v, pricePattern)
}

// DeliveryFeeAmount is DisplayDeliveryFee for arithmetic: anything unparseable is 0.
func DeliveryFeeAmount(v any) float64 {
	return amount(v, feePattern)
}

// PriceAmount is DisplayPrice for arithmetic: anything unparseable is 0.
func PriceAmount(v any) float64 {
	return amount(v, pricePattern)
}

func display(v any, re *regexp.Regexp) any {
	if v == nil || nonFinite(v) {
		return nil
	}
	if f, ok := number(v); ok {
		return f
	}
	s, ok := v.(string)
	if !ok {
		return v
	}
	if f, ok := firstFloat(s, re); ok {
		return f
	}
	return s
}

func amount(v any, re *regexp.Regexp) float64 {
	switch out := display(v, re).(type) {
	case float64:
		return out
	default:
		return 0
	}
}

func firstFloat(s string, re *regexp.Regexp) (float64, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ETA extracts the minutes from strings like "3.1 mi • 36 min". Integers pass
// through; anything else is returned unchanged.
func ETA(v any) any {
	if v == nil || nonFinite(v) {
		return nil
	}
	if n, ok := integer(v); ok {
		return n
	}
	s, ok := v.(string)
	if !ok {
		return v
	}
	m := etaPattern.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return s
	}
	return n
}

// RatingCount parses "(3k+)" as 3000 and "(120)" as 120.
func RatingCount(v any) any {
	if v == nil || nonFinite(v) {
		return nil
	}
	if n, ok := integer(v); ok {
		return n
	}
	s, ok := v.(string)
	if !ok {
		return v
	}

	clean := strings.Trim(s, "()")
	if strings.Contains(strings.ToLower(clean), thousandsSuffix) {
		if f, ok := firstFloat(clean, pricePattern); ok {
			return int(f * 1000)
		}
	}
	if m := digitsPattern.FindStringSubmatch(clean); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return s
}

// PriceRange renders an integer tier as that many "$". Other values are stringified.
func PriceRange(v any) any {
	if v == nil || nonFinite(v) {
		return nil
	}
	if n, ok := integer(v); ok {
		if n < 0 {
			n = 0
		}
		return strings.Repeat("$", n)
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Float reads finite numbers and numeric strings. Everything else, NaN and ±Inf
// included, is nil.
func Float(v any) *float64 {
	if f, ok := number(v); ok {
		return &f
	}
	if s, ok := v.(string); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && isFinite(f) {
			return &f
		}
	}
	return nil
}

// Int reads whole numbers and integer strings. Everything else is nil.
func Int(v any) *int {
	if n, ok := integer(v); ok {
		return &n
	}
	if s, ok := v.(string); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return &n
		}
	}
	return nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, isFinite(n)
	case float32:
		return float64(n), isFinite(float64(n))
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// integer accepts integer kinds and whole floats; document stores and JSON
// decoders disagree on which one a whole number comes back as.
func integer(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
	case float32:
		f := float64(n)
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return int(f), true
		}
	}
	return 0, false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// nonFinite reports NaN or ±Inf floats, which JSON cannot carry.
func nonFinite(v any) bool {
	switch n := v.(type) {
	case float64:
		return !isFinite(n)
	case float32:
		return !isFinite(float64(n))
	}
	return false
}
