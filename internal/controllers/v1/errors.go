package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budgetfold/backend/internal/httputil"
	"github.com/budgetfold/backend/internal/models"
)

// status returns the appropriate HTTP status for a ledger or storage error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) || errors.Is(err, models.ErrTransferFailed) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// renderError writes the uniform error body. Validation failures carry
// their field-level messages individually.
func renderError(c *gin.Context, err error) {
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		c.JSON(status(err), httputil.Failure(validation.Messages()...))
		return
	}

	c.JSON(status(err), httputil.Failure(err.Error()))
}

// Transfer errors
var (
	errBudgetParameter = errors.New("the budget query parameter must be a decimal number")
)

// Registration errors
var (
	errPasswordNotSet = errors.New("the password field must be set")
)
