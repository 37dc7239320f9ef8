package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/fire-protocols/internal/types"
)

// Validator checks ReportInput values. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the report rules registered.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	mustRegister(v, "decrange", decimalRange)
	mustRegister(v, "protodate", protocolDate)
	mustRegister(v, "runemin", runeMin)
	mustRegister(v, "wholenum", wholeNumber)
	v.RegisterStructValidation(marchHasElement, types.MarchSpec{})
	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// Validate returns nil or a *ValidationError listing every problem.
func (val *Validator) Validate(in types.ReportInput) error {
	if in.Report == nil {
		return &ValidationError{Errors: []FieldError{{Field: "protocol_type", Message: "Не указан тип протокола"}}}
	}
	return val.ValidateReport(in.Report)
}

// ValidateReport validates a single report variant.
func (val *Validator) ValidateReport(r types.Report) error {
	err := val.v.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}

	out := &ValidationError{}
	for _, fe := range fieldErrs {
		out.add(fieldPath(fe), message(fe))
	}
	return out
}

var indexPattern = regexp.MustCompile(`^(Ladders|Marches)\[(\d+)\]`)

// fieldPath drops the root type and embedded struct names from the namespace:
// "VerticalReport.Common.Date" becomes "Date".
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	kept := parts[:0]
	for i, p := range parts {
		if i == 0 || p == "Common" || p == "Inspection" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ".")
}

// elementPrefix returns "Лестница №2: " for errors inside a ladder or march.
func elementPrefix(path string) string {
	m := indexPattern.FindStringSubmatch(path)
	if m == nil {
		return ""
	}
	idx, _ := strconv.Atoi(m[2])
	if m[1] == "Ladders" {
		return fmt.Sprintf("Лестница №%d: ", idx+1)
	}
	return fmt.Sprintf("Марш №%d: ", idx+1)
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	if i := strings.IndexByte(label, '['); i >= 0 {
		label = label[:i]
	}
	prefix := elementPrefix(fieldPath(fe))

	var msg string
	switch fe.Tag() {
	case "required", "required_if":
		if fe.Kind() == reflect.Slice {
			msg = fmt.Sprintf("Добавьте хотя бы один элемент в разделе «%s»", label)
		} else {
			msg = fmt.Sprintf("Поле «%s» обязательно для заполнения", label)
		}
	case "min":
		msg = fmt.Sprintf("Добавьте хотя бы один элемент в разделе «%s»", label)
	case "runemin":
		msg = fmt.Sprintf("Поле «%s» должно содержать не менее %s символов", label, fe.Param())
	case "protodate":
		msg = fmt.Sprintf("Поле «%s» должно быть датой в формате ДД.ММ.ГГГГ, ГГГГ-ММ-ДД или ДД/ММ/ГГГГ", label)
	case "decrange":
		if _, ok := types.Decimal(fmt.Sprint(fe.Value())).Parse(); !ok {
			msg = fmt.Sprintf("Поле «%s» должно быть числом", label)
		} else {
			lo, hi, _ := rangeParam(fe.Param())
			msg = fmt.Sprintf("Поле «%s» должно быть в диапазоне от %s до %s",
				label, strconv.FormatFloat(lo, 'f', -1, 64), strconv.FormatFloat(hi, 'f', -1, 64))
		}
	case "wholenum":
		msg = fmt.Sprintf("Поле «%s» должно быть целым числом", label)
	case "march_or_platform":
		msg = "укажите марш и/или площадку"
	default:
		msg = fmt.Sprintf("Поле «%s» заполнено неверно (%s)", label, fe.Tag())
	}
	return prefix + msg
}
