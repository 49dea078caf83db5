package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	configure(v)
	return v
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Passwords are exactly four characters long.
	v.RegisterAlias("pwd", "len=4")
	v.RegisterAlias("name", "min=2,max=30")
}

// Init applies the same configuration to the validator used by Gin's binding.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// FirstMessage returns a human-readable message for the first violated
// constraint in err, e.g. `"password" length must be 4 characters long`.
func FirstMessage(err error) string {
	if err == nil {
		return ""
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		field := ute.Field
		if ute.Type == timeType {
			if field == "" {
				field = "date"
			}
			return fmt.Sprintf("%q must be a valid date", field)
		}
		if field == "" {
			field = "payload"
		}
		return fmt.Sprintf("%q must be a %s", field, ute.Type.Kind())
	}
	var te *TimeError
	if errors.As(err, &te) {
		return `"date" must be a valid date`
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return `"payload" must be valid JSON`
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("%q %s", fe.Field(), formatFieldError(fe))
	}
	return `"payload" is invalid`
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Type == timeType && ute.Field != "" {
		return map[string]string{ute.Field: "must be a valid date"}
	}
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required":
		return "is required"
	case "pwd":
		return "length must be 4 characters long"
	case "name":
		return "length must be between 2 and 30 characters long"
	case "len":
		if isNumberKind(kind) {
			return "must be equal to " + param
		}
		if kind == reflect.Slice {
			return "must contain " + param + " items"
		}
		return "length must be " + param + " characters long"
	case "min":
		if isNumberKind(kind) {
			return "must be greater than or equal to " + param
		}
		if kind == reflect.Slice {
			return "must contain at least " + param + " items"
		}
		return "length must be at least " + param + " characters long"
	case "max":
		if isNumberKind(kind) {
			return "must be less than or equal to " + param
		}
		if kind == reflect.Slice {
			return "must contain less than or equal to " + param + " items"
		}
		return "length must be less than or equal to " + param + " characters long"
	case "oneof":
		return "must be one of [" + strings.Join(strings.Fields(param), ", ") + "]"
	case "boolean":
		return "must be a boolean"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid uri"
	case "dive":
		return "contains an invalid item"
	default:
		if param != "" {
			return fmt.Sprintf("failed on the '%s' rule with '%s'", tag, param)
		}
		return fmt.Sprintf("failed on the '%s' rule", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
