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

type envelopeResponse struct {
	Data     models.Envelope `json:"data"`
	Messages []string        `json:"messages"`
	Errors   []string        `json:"errors"`
}

type envelopeListResponse struct {
	Data     []models.Envelope `json:"data"`
	Messages []string          `json:"messages"`
	Errors   []string          `json:"errors"`
}

type transferResponse struct {
	Data     v1.TransferRecord `json:"data"`
	Messages []string          `json:"messages"`
	Errors   []string          `json:"errors"`
}

func (suite *TestSuiteStandard) createTestEnvelope(name string, budget int64) models.Envelope {
	recorder := suite.request(http.MethodPost, "/v1/envelopes", v1.EnvelopeEditable{
		Name:   name,
		Budget: decimal.NewFromInt(budget),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response envelopeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	return response.Data
}

func (suite *TestSuiteStandard) TestEnvelopeCreate() {
	recorder := suite.request(http.MethodPost, "/v1/envelopes", v1.EnvelopeEditable{
		Name:   "groceries",
		Budget: decimal.NewFromInt(300),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response envelopeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), uint64(1), response.Data.ID)
	assert.Equal(suite.T(), "groceries", response.Data.Name)
	assert.True(suite.T(), response.Data.Budget.Equal(decimal.NewFromInt(300)))
	assert.Contains(suite.T(), response.Messages, `New envelope "groceries" has been created.`)
	assert.Empty(suite.T(), response.Errors)
}

func (suite *TestSuiteStandard) TestEnvelopeCreateInvalid() {
	recorder := suite.request(http.MethodPost, "/v1/envelopes", v1.EnvelopeEditable{
		Name:   "",
		Budget: decimal.NewFromInt(-10),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response envelopeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Contains(suite.T(), response.Errors, "name must be set")
	assert.Contains(suite.T(), response.Errors, "budget must be zero or positive")
}

func (suite *TestSuiteStandard) TestEnvelopeCreateBrokenBody() {
	recorder := suite.request(http.MethodPost, "/v1/envelopes", `{ "name": `)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestEnvelopeList() {
	_ = suite.createTestEnvelope("groceries", 300)
	_ = suite.createTestEnvelope("books", 50)

	recorder := suite.request(http.MethodGet, "/v1/envelopes", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response envelopeListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Len(suite.T(), response.Data, 2)
}

func (suite *TestSuiteStandard) TestEnvelopeGet() {
	envelope := suite.createTestEnvelope("groceries", 300)

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/envelopes/%d", envelope.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response envelopeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), envelope.ID, response.Data.ID)
	assert.Equal(suite.T(), "groceries", response.Data.Name)
}

func (suite *TestSuiteStandard) TestEnvelopeGetNotFound() {
	recorder := suite.request(http.MethodGet, "/v1/envelopes/99", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	var response envelopeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Contains(suite.T(), response.Errors, "there is no envelope matching your query")
}

func (suite *TestSuiteStandard) TestEnvelopeGetInvalidID() {
	recorder := suite.request(http.MethodGet, "/v1/envelopes/notanumber", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestEnvelopeUpdate() {
	envelope := suite.createTestEnvelope("groceries", 300)

	recorder := suite.request(http.MethodPatch, fmt.Sprintf("/v1/envelopes/%d", envelope.ID), map[string]any{
		"budget": "500",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response envelopeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), "groceries", response.Data.Name, "fields not in the request must not change")
	assert.True(suite.T(), response.Data.Budget.Equal(decimal.NewFromInt(500)))
	assert.Contains(suite.T(), response.Messages, fmt.Sprintf("Envelope ID (%d) has been updated.", envelope.ID))
}

func (suite *TestSuiteStandard) TestEnvelopeUpdateNotFound() {
	recorder := suite.request(http.MethodPatch, "/v1/envelopes/99", map[string]any{
		"name": "nope",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestEnvelopeDelete() {
	envelope := suite.createTestEnvelope("groceries", 300)

	recorder := suite.request(http.MethodDelete, fmt.Sprintf("/v1/envelopes/%d", envelope.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response envelopeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), response.Messages, fmt.Sprintf("Envelope ID (%d) has been deleted.", envelope.ID))

	recorder = suite.request(http.MethodGet, fmt.Sprintf("/v1/envelopes/%d", envelope.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestEnvelopeDeleteNotFound() {
	recorder := suite.request(http.MethodDelete, "/v1/envelopes/99", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransfer() {
	from := suite.createTestEnvelope("groceries", 300)
	to := suite.createTestEnvelope("books", 50)

	recorder := suite.request(http.MethodPost, fmt.Sprintf("/v1/envelopes/transfer/%d/%d?budget=100", from.ID, to.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response transferResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.Data.Source.Budget.Equal(decimal.NewFromInt(200)))
	assert.True(suite.T(), response.Data.Target.Budget.Equal(decimal.NewFromInt(150)))
	assert.Contains(suite.T(), response.Messages, `Updated budget of the "groceries" envelope is now 200.`)
	assert.Contains(suite.T(), response.Messages, `Updated budget of the "books" envelope is now 150.`)
}

func (suite *TestSuiteStandard) TestTransferMissingBudget() {
	from := suite.createTestEnvelope("groceries", 300)
	to := suite.createTestEnvelope("books", 50)

	recorder := suite.request(http.MethodPost, fmt.Sprintf("/v1/envelopes/transfer/%d/%d", from.ID, to.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response transferResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), response.Errors, models.ErrMissingParameter.Error())
}

func (suite *TestSuiteStandard) TestTransferInvalidBudget() {
	from := suite.createTestEnvelope("groceries", 300)
	to := suite.createTestEnvelope("books", 50)

	recorder := suite.request(http.MethodPost, fmt.Sprintf("/v1/envelopes/transfer/%d/%d?budget=all", from.ID, to.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransferTargetNotFound() {
	from := suite.createTestEnvelope("groceries", 300)

	recorder := suite.request(http.MethodPost, fmt.Sprintf("/v1/envelopes/transfer/%d/99?budget=100", from.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransferOverdraw() {
	from := suite.createTestEnvelope("groceries", 300)
	to := suite.createTestEnvelope("books", 50)

	recorder := suite.request(http.MethodPost, fmt.Sprintf("/v1/envelopes/transfer/%d/%d?budget=400", from.ID, to.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response transferResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), response.Errors, "budget must be zero or positive")
}

func (suite *TestSuiteStandard) TestEnvelopeOptions() {
	tests := []struct {
		url   string
		allow string
	}{
		{"/v1/envelopes", "GET, POST"},
		{"/v1/envelopes/1", "GET, PATCH, DELETE"},
		{"/v1/envelopes/transfer/1/2", "POST"},
	}

	for _, tt := range tests {
		recorder := suite.request(http.MethodOptions, tt.url, nil)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
		assert.Equal(suite.T(), tt.allow, recorder.Header().Get("allow"))
	}
}

func (suite *TestSuiteStandard) TestEnvelopeUnauthenticated() {
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/envelopes", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}
