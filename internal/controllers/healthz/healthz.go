package healthz

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budgetfold/backend/internal/httputil"
	"github.com/budgetfold/backend/internal/storage"
)

func RegisterRoutes(r *gin.RouterGroup, store storage.Store) {
	r.OPTIONS("", Options)
	r.GET("", Get(store))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Success		204
// @Failure		500	{object}	httputil.Response
// @Router			/healthz [get]
func Get(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, httputil.Failure(err.Error()))
			return
		}

		c.Status(http.StatusNoContent)
	}
}
