package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}

// HandleValidationErrors writes a 400 with per-field messages when err comes
// from the request validator, or a generic 400 for malformed JSON.
func HandleValidationErrors(err error, ctx iris.Context) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fieldErrors := make([]FieldError, 0, len(validationErrs))
		for _, e := range validationErrs {
			fieldErrors = append(fieldErrors, FieldError{Field: e.Field(), Message: fieldMessage(e)})
		}
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"success": false, "error": "validation failed", "errors": fieldErrors})
		return
	}

	ctx.StatusCode(iris.StatusBadRequest)
	ctx.JSON(iris.Map{"success": false, "error": "invalid request body"})
}

func CreateError(status int, title string, detail string, ctx iris.Context) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{"success": false, "error": detail, "title": title})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, "Internal Server Error", "an internal server error occurred", ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "Not Found", "resource not found", ctx)
}
