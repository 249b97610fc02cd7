// Package v1 implements the HTTP handlers for the first stable API.
//
// Handlers are thin: they parse and coerce input, call the ledger and
// render the uniform response body. All business rules live in the
// ledger package.
package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/budgetfold/backend/internal/auth"
	"github.com/budgetfold/backend/internal/ledger"
	"github.com/budgetfold/backend/internal/storage"
)

type Controller struct {
	ledger *ledger.Ledger
	store  storage.Store
	hash   auth.Hasher
}

func NewController(store storage.Store, l *ledger.Ledger, hash auth.Hasher) Controller {
	return Controller{
		ledger: l,
		store:  store,
		hash:   hash,
	}
}

// RegisterRoutes attaches all v1 endpoints. The unauthenticated group is
// used for user registration only, everything else requires credentials.
func (co Controller) RegisterRoutes(open, authenticated *gin.RouterGroup) {
	co.RegisterUserRoutes(open.Group("/users"))
	co.RegisterEnvelopeRoutes(authenticated.Group("/envelopes"))
	co.RegisterTransactionRoutes(authenticated.Group("/transactions"))
}
