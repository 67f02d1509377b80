package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirbansen/framap/internal/api"
	"github.com/anirbansen/framap/internal/model"
)

func testClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.New(server.URL, model.HTTPConfig{Timeout: 5 * time.Second}, zerolog.Nop())
}

func TestClient_AttachesBearerWhenTokenPresent(t *testing.T) {
	var gotAuth string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"claims":[]}`))
	})
	client.SetTokenProvider(func() string { return "tok-abc" })

	_, err := client.Claims(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestClient_SkipsBearerWhenTokenAbsent(t *testing.T) {
	var gotAuth string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"claims":[]}`))
	})
	// Fail-open: an empty provider result means no header, not an error.
	client.SetTokenProvider(func() string { return "" })

	_, err := client.Claims(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClaims_DropsInvalidRecords(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"claims":[
			{"id":1,"claim_number":"FRA-001","status":"approved"},
			{"claim_number":"no-id","status":"pending"},
			{"id":2,"claim_number":"FRA-002","status":"pending"}
		]}`))
	})

	claims, err := client.Claims(context.Background())
	require.NoError(t, err)
	require.Len(t, claims, 2)
	assert.Equal(t, 1, claims[0].ID)
	assert.Equal(t, 2, claims[1].ID)
}

func TestClient_UnauthorizedFiresHookOnce(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Token has expired"}`))
	})

	var fired atomic.Int32
	client.OnUnauthorized(func() { fired.Add(1) })

	_, err := client.Assets(context.Background())
	require.ErrorIs(t, err, api.ErrSessionExpired)
	assert.Equal(t, int32(1), fired.Load())
}

func TestLogin_RejectionCarriesServerMessage(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid username or password"}`))
	})

	var fired atomic.Int32
	client.OnUnauthorized(func() { fired.Add(1) })

	_, err := client.Login(context.Background(), "u", "wrong")

	var authErr *api.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid username or password", authErr.Message)

	// A rejected login is not an expired session; the hook stays quiet.
	assert.Equal(t, int32(0), fired.Load())
}

func TestLogin_GenericFallbackWithoutServerMessage(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Login(context.Background(), "u", "p")

	var authErr *api.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Login failed", authErr.Message)
}

func TestRegister_SuccessReturnsTokenAndUser(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"access_token":"tok-new","user":{"id":3,"username":"newbie","email":"n@example.org","role":"user"}}`))
	})

	resp, err := client.Register(context.Background(), "newbie", "n@example.org", "p")
	require.NoError(t, err)
	assert.Equal(t, "tok-new", resp.AccessToken)
	assert.Equal(t, "newbie", resp.User.Username)
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := api.New(server.URL, model.HTTPConfig{Timeout: time.Second}, zerolog.Nop())
	server.Close()

	_, err := client.Claims(context.Background())

	var netErr *api.NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestLogin_TransportFailureKeepsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := api.New(server.URL, model.HTTPConfig{Timeout: time.Second}, zerolog.Nop())
	server.Close()

	_, err := client.Login(context.Background(), "u", "p")

	// Callers can tell "backend unreachable" from "bad password".
	var netErr *api.NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestClient_ServerErrorIsStatusError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"upstream unavailable"}`))
	})

	_, err := client.Assets(context.Background())

	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream unavailable", statusErr.Message)
}

func TestHealth_ReportsReachableBackend(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	require.NoError(t, client.Health(context.Background()))
}

func TestHealth_FailedPingNeverInvalidatesSession(t *testing.T) {
	var hookFired atomic.Bool
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"no anonymous access"}`))
	})
	client.OnUnauthorized(func() { hookFired.Store(true) })

	err := client.Health(context.Background())
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.False(t, hookFired.Load(), "a health ping rejection is not a session event")
}
