package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// Every response is a {success, message?, data?} envelope; these helpers cover
// the failure half.

func CreateError(statusCode int, title string, detail string, ctx iris.Context) {
	ctx.StatusCode(statusCode)
	ctx.JSON(iris.Map{"success": false, "error": title, "message": detail})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, "Internal Server Error", "Something went wrong, please try again later.", ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "Not Found", "Resource not found.", ctx)
}

func CreateEmailAlreadyRegistered(ctx iris.Context) {
	CreateError(iris.StatusConflict, "Conflict", "Email already registered.", ctx)
}

// HandleValidationErrors translates validator failures into a 400 envelope;
// anything else that broke JSON reading becomes a generic bad request.
func HandleValidationErrors(err error, ctx iris.Context) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields = append(fields, fmt.Sprintf("%s failed on %s", fieldErr.Field(), fieldErr.Tag()))
		}
		CreateError(iris.StatusBadRequest, "Validation Error", strings.Join(fields, "; "), ctx)
		return
	}
	CreateError(iris.StatusBadRequest, "Validation Error", "Invalid request payload.", ctx)
}

type PageMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

func JSONPage(ctx iris.Context, data interface{}, page, perPage int, total int64) {
	ctx.JSON(iris.Map{
		"success": true,
		"data":    data,
		"meta":    PageMeta{Page: page, PerPage: perPage, Total: total},
	})
}

func JSONError(ctx iris.Context, status int, code, message string) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{"success": false, "error": code, "message": message})
}
