package v1_test

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/budgetfold/backend/internal/controllers/v1"
	"github.com/budgetfold/backend/internal/models"
	"github.com/budgetfold/backend/test"
)

type transactionResponse struct {
	Data     v1.TransactionRecord `json:"data"`
	Messages []string             `json:"messages"`
	Errors   []string             `json:"errors"`
}

type transactionDeleteResponse struct {
	Data     v1.TransactionDeleteRecord `json:"data"`
	Messages []string                   `json:"messages"`
	Errors   []string                   `json:"errors"`
}

func (suite *TestSuiteStandard) createTestTransaction(envelopeID uint64, amount int64) v1.TransactionRecord {
	recorder := suite.request(http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Amount:     decimal.NewFromInt(amount),
		Recipient:  "Store",
		EnvelopeID: envelopeID,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response transactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	return response.Data
}

func (suite *TestSuiteStandard) TestTransactionCreate() {
	envelope := suite.createTestEnvelope("groceries", 300)

	recorder := suite.request(http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Date:       "2022-04-02",
		Amount:     decimal.NewFromInt(50),
		Recipient:  "Store",
		EnvelopeID: envelope.ID,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response transactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), uint64(1), response.Data.ID)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromInt(50)))
	assert.Equal(suite.T(), "Store", response.Data.Recipient)
	assert.Equal(suite.T(), "2022-04-02T00:00:00Z", response.Data.Date.Format("2006-01-02T15:04:05Z07:00"))
	assert.True(suite.T(), response.Data.EnvelopeBudgetAfter.Equal(decimal.NewFromInt(250)))
	assert.Contains(suite.T(), response.Messages, "New transaction of ID (1) has been created.")
	assert.Contains(suite.T(), response.Messages, `Updated budget of the "groceries" envelope is now 250.`)
}

func (suite *TestSuiteStandard) TestTransactionCreateDefaultDate() {
	envelope := suite.createTestEnvelope("groceries", 300)

	transaction := suite.createTestTransaction(envelope.ID, 50)
	assert.False(suite.T(), transaction.Date.IsZero(), "date must default to the current day")
}

func (suite *TestSuiteStandard) TestTransactionCreateInvalidDate() {
	envelope := suite.createTestEnvelope("groceries", 300)

	recorder := suite.request(http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Date:       "02.04.2022",
		Amount:     decimal.NewFromInt(50),
		EnvelopeID: envelope.ID,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response transactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), response.Errors[0], "date must be formatted as")
}

func (suite *TestSuiteStandard) TestTransactionCreateInsufficientBudget() {
	envelope := suite.createTestEnvelope("groceries", 300)

	recorder := suite.request(http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Amount:     decimal.NewFromInt(301),
		EnvelopeID: envelope.ID,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response transactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), response.Errors, models.ErrInsufficientBudget.Error())
}

func (suite *TestSuiteStandard) TestTransactionCreateEnvelopeNotFound() {
	recorder := suite.request(http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Amount:     decimal.NewFromInt(50),
		EnvelopeID: 99,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionList() {
	envelope := suite.createTestEnvelope("groceries", 300)
	_ = suite.createTestTransaction(envelope.ID, 50)
	_ = suite.createTestTransaction(envelope.ID, 30)

	recorder := suite.request(http.MethodGet, "/v1/transactions", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response struct {
		Data []models.Transaction `json:"data"`
	}
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 2)
}

func (suite *TestSuiteStandard) TestTransactionGet() {
	envelope := suite.createTestEnvelope("groceries", 300)
	transaction := suite.createTestTransaction(envelope.ID, 50)

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/transactions/%d", transaction.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response struct {
		Data models.Transaction `json:"data"`
	}
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), transaction.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestTransactionGetNotFound() {
	recorder := suite.request(http.MethodGet, "/v1/transactions/99", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	var response transactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), response.Errors, "there is no transaction matching your query")
}

func (suite *TestSuiteStandard) TestTransactionUpdate() {
	envelope := suite.createTestEnvelope("groceries", 300)
	transaction := suite.createTestTransaction(envelope.ID, 50)

	recorder := suite.request(http.MethodPatch, fmt.Sprintf("/v1/transactions/%d", transaction.ID), map[string]any{
		"amount": "80",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response transactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromInt(80)))
	assert.Equal(suite.T(), "Store", response.Data.Recipient, "fields not in the request must not change")
	assert.True(suite.T(), response.Data.EnvelopeBudgetAfter.Equal(decimal.NewFromInt(220)))
	assert.Contains(suite.T(), response.Messages, fmt.Sprintf("Transaction ID (%d) has been updated.", transaction.ID))
	assert.Contains(suite.T(), response.Messages, `Updated budget of the "groceries" envelope is now 220.`)
}

func (suite *TestSuiteStandard) TestTransactionUpdateInsufficientBudget() {
	envelope := suite.createTestEnvelope("groceries", 100)
	transaction := suite.createTestTransaction(envelope.ID, 50)

	recorder := suite.request(http.MethodPatch, fmt.Sprintf("/v1/transactions/%d", transaction.ID), map[string]any{
		"amount": "200",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response transactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), response.Errors, models.ErrInsufficientBudget.Error())
}

func (suite *TestSuiteStandard) TestTransactionUpdateNotFound() {
	recorder := suite.request(http.MethodPatch, "/v1/transactions/99", map[string]any{
		"amount": "10",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionDelete() {
	envelope := suite.createTestEnvelope("groceries", 300)
	transaction := suite.createTestTransaction(envelope.ID, 50)

	recorder := suite.request(http.MethodDelete, fmt.Sprintf("/v1/transactions/%d", transaction.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response transactionDeleteResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), transaction.ID, response.Data.ID)
	assert.Equal(suite.T(), envelope.ID, response.Data.EnvelopeID)
	assert.True(suite.T(), response.Data.EnvelopeBudgetAfter.Equal(decimal.NewFromInt(300)))
	assert.Contains(suite.T(), response.Messages, fmt.Sprintf("Transaction ID (%d) has been deleted.", transaction.ID))
	assert.Contains(suite.T(), response.Messages, `Budget has been returned to the "groceries" envelope. Updated budget is now 300.`)
}

func (suite *TestSuiteStandard) TestTransactionDeleteNotFound() {
	recorder := suite.request(http.MethodDelete, "/v1/transactions/99", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionOptions() {
	tests := []struct {
		url   string
		allow string
	}{
		{"/v1/transactions", "GET, POST"},
		{"/v1/transactions/1", "GET, PATCH, DELETE"},
	}

	for _, tt := range tests {
		recorder := suite.request(http.MethodOptions, tt.url, nil)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
		assert.Equal(suite.T(), tt.allow, recorder.Header().Get("allow"))
	}
}
