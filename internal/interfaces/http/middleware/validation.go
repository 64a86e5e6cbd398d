package middleware

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/procurehub/backend/internal/infrastructure/logger"
	"github.com/procurehub/backend/internal/interfaces/http/dto"
)

// SetupValidator makes gin's validator report JSON field names in errors
// instead of Go struct field names
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
}

// FormatValidationErrors turns binding errors into the standard envelope
// with per-field details
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
			})
		}
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes a 400 validation response
func HandleValidationError(c *gin.Context, err error) {
	requestID := c.GetString(logger.GinContextRequestIDKey)
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, requestID))
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "min", "max", "gte", "lte":
		return boundMessage(e)
	default:
		return "Invalid value"
	}
}

// boundMessage phrases numeric bounds for strings as character counts
func boundMessage(e validator.FieldError) string {
	var phrase string
	switch e.Tag() {
	case "min":
		phrase = "Must be at least "
	case "max":
		phrase = "Must be at most "
	case "gte":
		phrase = "Must be greater than or equal to "
	case "lte":
		phrase = "Must be less than or equal to "
	}
	msg := phrase + e.Param()
	if (e.Tag() == "min" || e.Tag() == "max") && e.Type().Kind() == reflect.String {
		msg += " characters"
	}
	return msg
}
