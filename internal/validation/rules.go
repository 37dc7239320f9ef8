package validation

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/fire-protocols/internal/types"
)

// DateLayouts are the accepted report date formats.
var DateLayouts = []string{"02.01.2006", "2006-01-02", "02/01/2006"}

// ParseDate parses a report date in any accepted layout.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// rangeParam splits a "min max" tag parameter.
func rangeParam(param string) (lo, hi float64, ok bool) {
	parts := strings.Fields(param)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err1 := strconv.ParseFloat(parts[0], 64)
	hi, err2 := strconv.ParseFloat(parts[1], 64)
	return lo, hi, err1 == nil && err2 == nil
}

// decimalRange passes blank values; presence is checked by required tags.
func decimalRange(fl validator.FieldLevel) bool {
	d := types.Decimal(fl.Field().String())
	if d.IsBlank() {
		return true
	}
	v, ok := d.Parse()
	if !ok {
		return false
	}
	lo, hi, ok := rangeParam(fl.Param())
	if !ok {
		return false
	}
	return v >= lo && v <= hi
}

// wholeNumber passes blank values and rejects fractional counts such as "2,5".
func wholeNumber(fl validator.FieldLevel) bool {
	d := types.Decimal(fl.Field().String())
	if d.IsBlank() {
		return true
	}
	v, ok := d.Parse()
	return ok && v == math.Trunc(v)
}

func protocolDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.TrimSpace(s) == "" {
		return true
	}
	_, ok := ParseDate(s)
	return ok
}

func runeMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}

// marchHasElement requires a march or a platform in every stair section.
func marchHasElement(sl validator.StructLevel) {
	m, ok := sl.Current().Interface().(types.MarchSpec)
	if !ok {
		return
	}
	if !m.HasMarch && !m.HasPlatform {
		sl.ReportError(m.HasMarch, "HasMarch", "HasMarch", "march_or_platform", "")
	}
}
