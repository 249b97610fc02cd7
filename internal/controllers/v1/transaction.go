package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budgetfold/backend/internal/auth"
	"github.com/budgetfold/backend/internal/httputil"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:transactionId", httputil.OptionsGetPatchDelete)
		r.GET("/:transactionId", co.GetTransaction)
		r.PATCH("/:transactionId", co.UpdateTransaction)
		r.DELETE("/:transactionId", co.DeleteTransaction)
	}
}

// @Summary		List transactions
// @Description	Returns all transactions of the authenticated user
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	httputil.Response
// @Failure		500	{object}	httputil.Response
// @Router			/v1/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	transactions, err := co.ledger.Transactions(c.Request.Context(), auth.UserID(c))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.Success(transactions))
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200				{object}	httputil.Response
// @Failure		400				{object}	httputil.Response
// @Failure		404				{object}	httputil.Response
// @Param			transactionId	path		string	true	"ID of the transaction"
// @Router			/v1/transactions/{transactionId} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	id, err := httputil.ParseID(c, "transactionId")
	if err != nil {
		renderError(c, err)
		return
	}

	transaction, err := co.ledger.Transaction(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.Success(transaction))
}

// @Summary		Create transaction
// @Description	Creates a new transaction and debits its envelope
// @Tags			Transactions
// @Produce		json
// @Success		201			{object}	httputil.Response
// @Failure		400			{object}	httputil.Response
// @Failure		404			{object}	httputil.Response
// @Param			transaction	body		v1.TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var editable TransactionEditable

	if err := httputil.BindData(c, &editable); err != nil {
		renderError(c, err)
		return
	}

	create, err := editable.create()
	if err != nil {
		renderError(c, err)
		return
	}

	result, err := co.ledger.CreateTransaction(c.Request.Context(), auth.UserID(c), create)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httputil.Success(
		newTransactionRecord(result),
		fmt.Sprintf("New transaction of ID (%d) has been created.", result.Transaction.ID),
		fmt.Sprintf("Updated budget of the %q envelope is now %s.", result.Envelope.Name, result.Envelope.Budget),
	))
}

// @Summary		Update transaction
// @Description	Updates a transaction and adjusts its envelope by the amount difference
// @Tags			Transactions
// @Produce		json
// @Success		200				{object}	httputil.Response
// @Failure		400				{object}	httputil.Response
// @Failure		404				{object}	httputil.Response
// @Param			transactionId	path		string					true	"ID of the transaction"
// @Param			transaction		body		v1.TransactionUpdateable	true	"Transaction"
// @Router			/v1/transactions/{transactionId} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	id, err := httputil.ParseID(c, "transactionId")
	if err != nil {
		renderError(c, err)
		return
	}

	var editable TransactionUpdateable
	if err := httputil.BindData(c, &editable); err != nil {
		renderError(c, err)
		return
	}

	update, err := editable.update()
	if err != nil {
		renderError(c, err)
		return
	}

	result, err := co.ledger.UpdateTransaction(c.Request.Context(), auth.UserID(c), id, update)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.Success(
		newTransactionRecord(result),
		fmt.Sprintf("Transaction ID (%d) has been updated.", result.Transaction.ID),
		fmt.Sprintf("Updated budget of the %q envelope is now %s.", result.Envelope.Name, result.Envelope.Budget),
	))
}

// @Summary		Delete transaction
// @Description	Deletes a transaction and returns its amount to the envelope
// @Tags			Transactions
// @Produce		json
// @Success		200				{object}	httputil.Response
// @Failure		400				{object}	httputil.Response
// @Failure		404				{object}	httputil.Response
// @Param			transactionId	path		string	true	"ID of the transaction"
// @Router			/v1/transactions/{transactionId} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	id, err := httputil.ParseID(c, "transactionId")
	if err != nil {
		renderError(c, err)
		return
	}

	result, err := co.ledger.DeleteTransaction(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.Success(
		TransactionDeleteRecord{
			ID:                  result.Transaction.ID,
			EnvelopeID:          result.Envelope.ID,
			EnvelopeBudgetAfter: result.Envelope.Budget,
		},
		fmt.Sprintf("Transaction ID (%d) has been deleted.", result.Transaction.ID),
		fmt.Sprintf("Budget has been returned to the %q envelope. Updated budget is now %s.", result.Envelope.Name, result.Envelope.Budget),
	))
}
