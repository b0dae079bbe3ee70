package exchangerate_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/chorekit/internal/adapter/driven/exchangerate"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRate_Success(t *testing.T) {
	server := newServer(t, http.StatusOK, `{"result":"success","base_code":"USD","rates":{"USD":1,"PLN":3.95,"EUR":0.92}}`)
	client := exchangerate.NewClientWithHTTPClient(server.Client(), server.URL)

	rate, err := client.Rate(context.Background(), "USD", "PLN")

	require.NoError(t, err)
	assert.InDelta(t, 3.95, rate, 1e-9)
}

func TestRate_LowercaseQuote(t *testing.T) {
	server := newServer(t, http.StatusOK, `{"base_code":"USD","rates":{"EUR":0.92}}`)
	client := exchangerate.NewClientWithHTTPClient(server.Client(), server.URL)

	rate, err := client.Rate(context.Background(), "usd", "eur")

	require.NoError(t, err)
	assert.InDelta(t, 0.92, rate, 1e-9)
}

func TestRate_MissingCurrency(t *testing.T) {
	server := newServer(t, http.StatusOK, `{"base_code":"USD","rates":{"EUR":0.92}}`)
	client := exchangerate.NewClientWithHTTPClient(server.Client(), server.URL)

	_, err := client.Rate(context.Background(), "USD", "PLN")

	assert.ErrorIs(t, err, driven.ErrRateUnavailable)
}

func TestRate_BaseMismatch(t *testing.T) {
	server := newServer(t, http.StatusOK, `{"base_code":"EUR","rates":{"PLN":4.3}}`)
	client := exchangerate.NewClientWithHTTPClient(server.Client(), server.URL)

	_, err := client.Rate(context.Background(), "USD", "PLN")

	assert.ErrorIs(t, err, driven.ErrRateUnavailable)
}

func TestRate_HTTPError(t *testing.T) {
	server := newServer(t, http.StatusServiceUnavailable, "down for maintenance")
	client := exchangerate.NewClientWithHTTPClient(server.Client(), server.URL)

	_, err := client.Rate(context.Background(), "USD", "PLN")

	require.ErrorIs(t, err, driven.ErrRateUnavailable)
	assert.Contains(t, err.Error(), "503 - down for maintenance")
}

func TestRate_InvalidJSON(t *testing.T) {
	server := newServer(t, http.StatusOK, `not json`)
	client := exchangerate.NewClientWithHTTPClient(server.Client(), server.URL)

	_, err := client.Rate(context.Background(), "USD", "PLN")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode exchange rate response")
}

func TestNewClient_CachesResponses(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Cache-Control", "max-age=3600")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"base_code":"USD","rates":{"PLN":4.0}}`)
	}))
	t.Cleanup(server.Close)

	client := exchangerate.NewClient(server.URL)
	for i := 0; i < 2; i++ {
		_, err := client.Rate(context.Background(), "USD", "PLN")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, hits)
}
