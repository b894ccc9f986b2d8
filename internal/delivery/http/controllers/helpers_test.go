package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"fleetadmin/internal/delivery/http/helpers"

	"github.com/stretchr/testify/require"
)

// decodeEnvelope decodes the response envelope and, when into is non-nil, its data payload.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, into any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if into != nil {
		require.Nil(t, envelope.Error, "success response must have error nil")
		dataBytes, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(dataBytes, into))
	}
	return envelope
}
