package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foodhubhq/storefront-gateway/pkg/config"
	pkgerrors "github.com/foodhubhq/storefront-gateway/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(config.BackendConfig{BaseURL: server.URL, Timeout: 2 * time.Second}, nil)
	require.NoError(t, err)
	return client
}

func TestGetForwardsCredentials(t *testing.T) {
	var gotCookie string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		w.Write([]byte(`{"data":[]}`))
	})

	ctx := WithCredentials(context.Background(), "fh_session=abc")
	_, err := client.Get(ctx, "/api/meals")
	require.NoError(t, err)
	require.Equal(t, "fh_session=abc", gotCookie)
}

func TestGetWithoutCredentialsOmitsCookieHeader(t *testing.T) {
	var sawCookie bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, sawCookie = r.Header["Cookie"]
		w.Write([]byte(`{}`))
	})

	_, err := client.Get(context.Background(), "/api/meals")
	require.NoError(t, err)
	require.False(t, sawCookie)
}

func TestPostEncodesBody(t *testing.T) {
	var received map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"o-1"}}`))
	})

	_, err := client.Post(context.Background(), "/api/orders", map[string]any{"note": "no onions"})
	require.NoError(t, err)
	require.Equal(t, "no onions", received["note"])
}

func TestErrorPreservesBackendMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"meal not found"}`))
	})

	_, err := client.Get(context.Background(), "/api/meals/missing")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	require.Equal(t, "meal not found", typed.Message())
}

func TestErrorDecodesEnvelopedMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":"FORBIDDEN","message":"providers only"}}`))
	})

	_, err := client.Get(context.Background(), "/api/provider/orders")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())
	require.Equal(t, "providers only", typed.Message())
}

func TestServerErrorMapsToBadGateway(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Get(context.Background(), "/api/meals")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeBadGateway, typed.Code())
}

func TestUnreachableBackendIsDependencyError(t *testing.T) {
	client, err := New(config.BackendConfig{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}, nil)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/api/meals")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeDependency, typed.Code())
}
