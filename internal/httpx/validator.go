package httpx

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields under their json names so error details match the wire.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("publication_year", validatePublicationYear)
}

// The bound is evaluated per call so the valid range shifts with the
// calendar year.
func validatePublicationYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= 1000 && year <= int64(time.Now().Year()+1)
}

// ValidateStruct runs the struct's validate tags and aggregates every
// violation into one list. Fields tagged omitempty are skipped when absent,
// which is what makes the same helper serve both strict (create) and
// partial (update) request structs.
func ValidateStruct(s interface{}) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var details []FieldError
	for _, fieldErr := range err.(validator.ValidationErrors) {
		field := fieldErr.Field()
		tag := fieldErr.Tag()
		param := fieldErr.Param()

		var message string
		switch tag {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, param)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, param)
		case "publication_year":
			message = fmt.Sprintf("%s must be an integer between 1000 and %d", field, time.Now().Year()+1)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		details = append(details, FieldError{
			Field:   field,
			Message: message,
		})
	}

	return details
}
