package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budgetfold/backend/internal/httputil"
	"github.com/budgetfold/backend/internal/models"
)

// UserEditable are the fields a caller provides when registering.
type UserEditable struct {
	Name     string `json:"name" example:"Maria Musterfrau"`
	Email    string `json:"email" example:"maria@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

// RegisterUserRoutes registers the routes for user registration with
// the RouterGroup that is passed. These routes are not authenticated.
func (co Controller) RegisterUserRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", co.CreateUser)
}

// @Summary		Register user
// @Description	Registers a new user for HTTP Basic authentication
// @Tags			Users
// @Produce		json
// @Success		201		{object}	httputil.Response
// @Failure		400		{object}	httputil.Response
// @Param			user	body		v1.UserEditable	true	"User"
// @Router			/v1/users [post]
func (co Controller) CreateUser(c *gin.Context) {
	var editable UserEditable

	if err := httputil.BindData(c, &editable); err != nil {
		renderError(c, err)
		return
	}

	if editable.Password == "" {
		renderError(c, errPasswordNotSet)
		return
	}

	hash, err := co.hash(editable.Password)
	if err != nil {
		renderError(c, models.ErrGeneral)
		return
	}

	user := models.User{
		Name:  editable.Name,
		Email: editable.Email,
		Hash:  hash,
	}

	if err := co.store.CreateUser(c.Request.Context(), &user); err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httputil.Success(
		user,
		fmt.Sprintf("New user %q has been registered.", user.Email),
	))
}
