package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/budgetfold/backend/internal/auth"
	"github.com/budgetfold/backend/internal/httputil"
	"github.com/budgetfold/backend/internal/models"
)

// RegisterEnvelopeRoutes registers the routes for envelopes with
// the RouterGroup that is passed.
func (co Controller) RegisterEnvelopeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetEnvelopes)
		r.POST("", co.CreateEnvelope)
	}

	// Transfers between two envelopes
	{
		r.OPTIONS("/transfer/:from/:to", httputil.OptionsPost)
		r.POST("/transfer/:from/:to", co.TransferBudget)
	}

	// Envelope with ID
	{
		r.OPTIONS("/:envelopeId", httputil.OptionsGetPatchDelete)
		r.GET("/:envelopeId", co.GetEnvelope)
		r.PATCH("/:envelopeId", co.UpdateEnvelope)
		r.DELETE("/:envelopeId", co.DeleteEnvelope)
	}
}

// @Summary		List envelopes
// @Description	Returns all envelopes of the authenticated user
// @Tags			Envelopes
// @Produce		json
// @Success		200	{object}	httputil.Response
// @Failure		500	{object}	httputil.Response
// @Router			/v1/envelopes [get]
func (co Controller) GetEnvelopes(c *gin.Context) {
	envelopes, err := co.ledger.Envelopes(c.Request.Context(), auth.UserID(c))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.Success(envelopes))
}

// @Summary		Get envelope
// @Description	Returns a specific envelope
// @Tags			Envelopes
// @Produce		json
// @Success		200			{object}	httputil.Response
// @Failure		400			{object}	httputil.Response
// @Failure		404			{object}	httputil.Response
// @Param			envelopeId	path		string	true	"ID of the envelope"
// @Router			/v1/envelopes/{envelopeId} [get]
func (co Controller) GetEnvelope(c *gin.Context) {
	id, err := httputil.ParseID(c, "envelopeId")
	if err != nil {
		renderError(c, err)
		return
	}

	envelope, err := co.ledger.Envelope(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.Success(envelope))
}

// @Summary		Create envelope
// @Description	Creates a new envelope
// @Tags			Envelopes
// @Produce		json
// @Success		201			{object}	httputil.Response
// @Failure		400			{object}	httputil.Response
// @Param			envelope	body		v1.EnvelopeEditable	true	"Envelope"
// @Router			/v1/envelopes [post]
func (co Controller) CreateEnvelope(c *gin.Context) {
	var editable EnvelopeEditable

	if err := httputil.BindData(c, &editable); err != nil {
		renderError(c, err)
		return
	}

	envelope, err := co.ledger.CreateEnvelope(c.Request.Context(), auth.UserID(c), editable.create())
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httputil.Success(
		envelope,
		fmt.Sprintf("New envelope %q has been created.", envelope.Name),
	))
}

// @Summary		Update envelope
// @Description	Updates an envelope. Only values to be updated need to be sent.
// @Tags			Envelopes
// @Produce		json
// @Success		200			{object}	httputil.Response
// @Failure		400			{object}	httputil.Response
// @Failure		404			{object}	httputil.Response
// @Param			envelopeId	path		string					true	"ID of the envelope"
// @Param			envelope	body		v1.EnvelopeUpdateable	true	"Envelope"
// @Router			/v1/envelopes/{envelopeId} [patch]
func (co Controller) UpdateEnvelope(c *gin.Context) {
	id, err := httputil.ParseID(c, "envelopeId")
	if err != nil {
		renderError(c, err)
		return
	}

	var editable EnvelopeUpdateable
	if err := httputil.BindData(c, &editable); err != nil {
		renderError(c, err)
		return
	}

	envelope, err := co.ledger.UpdateEnvelope(c.Request.Context(), auth.UserID(c), id, editable.update())
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.Success(
		envelope,
		fmt.Sprintf("Envelope ID (%d) has been updated.", envelope.ID),
	))
}

// @Summary		Delete envelope
// @Description	Deletes an envelope. Transactions that reference it are kept.
// @Tags			Envelopes
// @Produce		json
// @Success		200			{object}	httputil.Response
// @Failure		400			{object}	httputil.Response
// @Failure		404			{object}	httputil.Response
// @Param			envelopeId	path		string	true	"ID of the envelope"
// @Router			/v1/envelopes/{envelopeId} [delete]
func (co Controller) DeleteEnvelope(c *gin.Context) {
	id, err := httputil.ParseID(c, "envelopeId")
	if err != nil {
		renderError(c, err)
		return
	}

	if err := co.ledger.DeleteEnvelope(c.Request.Context(), auth.UserID(c), id); err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.Success(
		EnvelopeDeleteRecord{ID: id},
		fmt.Sprintf("Envelope ID (%d) has been deleted.", id),
	))
}

// @Summary		Transfer budget
// @Description	Moves budget from one envelope to another
// @Tags			Envelopes
// @Produce		json
// @Success		201		{object}	httputil.Response
// @Failure		400		{object}	httputil.Response
// @Failure		404		{object}	httputil.Response
// @Failure		500		{object}	httputil.Response
// @Param			from	path		string	true	"ID of the source envelope"
// @Param			to		path		string	true	"ID of the target envelope"
// @Param			budget	query		string	true	"Amount to transfer"
// @Router			/v1/envelopes/transfer/{from}/{to} [post]
func (co Controller) TransferBudget(c *gin.Context) {
	from, err := httputil.ParseID(c, "from")
	if err != nil {
		renderError(c, err)
		return
	}

	to, err := httputil.ParseID(c, "to")
	if err != nil {
		renderError(c, err)
		return
	}

	raw, ok := c.GetQuery("budget")
	if !ok || raw == "" {
		renderError(c, models.ErrMissingParameter)
		return
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		renderError(c, errBudgetParameter)
		return
	}

	result, err := co.ledger.Transfer(c.Request.Context(), auth.UserID(c), from, to, amount)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httputil.Success(
		TransferRecord{Source: result.Source, Target: result.Target},
		fmt.Sprintf("Updated budget of the %q envelope is now %s.", result.Source.Name, result.Source.Budget),
		fmt.Sprintf("Updated budget of the %q envelope is now %s.", result.Target.Name, result.Target.Budget),
	))
}
