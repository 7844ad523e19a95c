package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tags registered on the shared validator.
const (
	TagIsInt     = "isint"
	TagNotEmpty  = "notempty"
	TagIsNumeric = "isnumeric"
	TagPositive  = "positive"
	TagIsBoolean = "isboolean"
)

var (
	intRegex     = regexp.MustCompile(`^[-+]?[0-9]+$`)
	numericRegex = regexp.MustCompile(`^[-+]?([0-9]*[.])?[0-9]+$`)
)

// validate is safe for concurrent use once the tags are registered.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	checks := map[string]func(any) bool{
		TagIsInt:     func(x any) bool { return intRegex.MatchString(StringOf(x)) },
		TagNotEmpty:  func(x any) bool { return StringOf(x) != "" },
		TagIsNumeric: func(x any) bool { return numericRegex.MatchString(StringOf(x)) },
		TagPositive: func(x any) bool {
			n, ok := NumberOf(x)
			return ok && n > 0
		},
		TagIsBoolean: func(x any) bool {
			_, ok := BoolOf(x)
			return ok
		},
	}
	for tag, check := range checks {
		check := check
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().Interface())
		}); err != nil {
			panic(fmt.Sprintf("validation: register %s: %v", tag, err))
		}
	}
	return v
}

// Check reports whether value passes the check registered under tag. A
// missing value (nil) fails every check.
func Check(value any, tag string) bool {
	return validate.Var(value, tag) == nil
}

// Struct validates the `validate` tags of v and reports each failing field
// in the same shape as a failed rule. messages maps a JSON field name to the
// message reported for it.
func Struct(v any, location Location, messages map[string]string) ([]FieldError, error) {
	err := validate.Struct(v)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = fe.Error()
		}
		out = append(out, FieldError{
			Type:     "field",
			Value:    fe.Value(),
			Msg:      msg,
			Path:     fe.Field(),
			Location: location,
		})
	}
	return out, nil
}

// StringOf renders a decoded JSON value the way the checks see it. Missing
// and null values read as the empty string.
func StringOf(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatNumber(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// formatNumber prints n in plain decimal notation when 1e-6 <= |n| < 1e21
// and as "1e+21" or "1e-7" outside that range, so exponent forms fail the
// numeric check.
func formatNumber(n float64) string {
	if n == 0 {
		return "0"
	}
	if abs := math.Abs(n); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(n, 'e', -1, 64), "e")
	return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// NumberOf coerces a decoded JSON value to a number. Strings are parsed after
// trimming, with the empty string reading as zero; booleans read as 1 and 0.
func NumberOf(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, true
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// BoolOf accepts true/false and their "1"/"0" forms.
func BoolOf(value any) (bool, bool) {
	switch StringOf(value) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}
