// Package auth resolves the calling user from HTTP Basic credentials.
//
// The package does not know how passwords are hashed. The credential
// functions are injected so that the HTTP layer can be tested without
// a real hash implementation.
package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budgetfold/backend/internal/httputil"
	"github.com/budgetfold/backend/internal/storage"
)

var ErrUnauthorized = errors.New("you need to provide valid credentials to use this endpoint")

const userIDKey = "userID"

// Verifier checks a cleartext password against a stored hash.
type Verifier func(password, hash string) error

// Hasher derives the stored hash for a cleartext password.
type Hasher func(password string) (string, error)

// Middleware authenticates requests with HTTP Basic credentials. The user
// is looked up by email and the password checked with the injected
// Verifier. On success the user's ID is stored in the request context.
func Middleware(store storage.Store, verify Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, ok := c.Request.BasicAuth()
		if !ok {
			unauthorized(c)
			return
		}

		user, err := store.UserByEmail(c.Request.Context(), email)
		if err != nil {
			unauthorized(c)
			return
		}

		if err := verify(password, user.Hash); err != nil {
			unauthorized(c)
			return
		}

		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// UserID returns the ID of the authenticated user. It is only valid on
// contexts that passed the Middleware.
func UserID(c *gin.Context) uint64 {
	return c.GetUint64(userIDKey)
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="budgetfold"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Failure(ErrUnauthorized.Error()))
}
