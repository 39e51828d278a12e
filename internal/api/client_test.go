package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaqiyusuf/gatepass/internal/domain"
)

type stubTokens struct {
	token       string
	invalidated bool
}

func (s *stubTokens) Token() string { return s.token }
func (s *stubTokens) Invalidate()   { s.invalidated = true }

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *stubTokens) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := &stubTokens{token: "tok-1"}
	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	return NewClient(cfg, tokens, nil, nil), tokens
}

func writeEnvelope(w http.ResponseWriter, data any) {
	payload, _ := json.Marshal(map[string]any{"data": data})
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, []domain.Tenant{})
	})

	_, err := client.ListTenants(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestClientUnwrapsEnvelope(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, []domain.Tenant{{ID: "ten-1", Name: "PT Maju"}})
	})

	tenants, err := client.ListTenants(context.Background())
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	assert.Equal(t, "PT Maju", tenants[0].Name)
}

func TestCreateStripsClientSideID(t *testing.T) {
	var body map[string]any
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeEnvelope(w, domain.Tenant{ID: "srv-1"})
	})

	_, err := client.CreateTenant(context.Background(), &domain.Tenant{ID: "stale", Name: "PT Maju"})
	require.NoError(t, err)
	_, hasID := body["id"]
	assert.False(t, hasID, "create payload must not carry an id")
}

func TestCreatePermitStripsID(t *testing.T) {
	var body map[string]any
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeEnvelope(w, domain.EntryPermit{ID: "srv-1"})
	})

	_, err := client.CreatePermit(context.Background(), &domain.EntryPermit{
		ID:             "stale",
		DocumentNumber: "DOC-1",
	})
	require.NoError(t, err)
	_, hasID := body["id"]
	assert.False(t, hasID)
}

func TestUpdatePermitTargetsRecordPath(t *testing.T) {
	var gotPath, gotMethod string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		writeEnvelope(w, domain.EntryPermit{ID: "perm-9"})
	})

	_, err := client.UpdatePermit(context.Background(), &domain.EntryPermit{ID: "perm-9", DocumentNumber: "DOC-1"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/permits/perm-9", gotPath)
}

func TestUnauthorizedClearsSessionAndFiresCallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	tokens := &stubTokens{token: "expired"}
	fired := false
	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	client := NewClient(cfg, tokens, nil, func() { fired = true })

	_, err := client.ListTenants(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, tokens.invalidated)
	assert.True(t, fired)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{"forbidden", http.StatusForbidden, "", func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrForbidden)
		}},
		{"not found", http.StatusNotFound, "", func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrNotFound)
		}},
		{"server error", http.StatusBadGateway, "", func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrUnavailable)
		}},
		{"validation error keeps message", http.StatusUnprocessableEntity,
			`{"message":"document number already used"}`,
			func(t *testing.T, err error) {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusUnprocessableEntity, se.Status)
				assert.Equal(t, "document number already used", se.Message)
			}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					w.Write([]byte(tt.body))
				}
			})
			_, err := client.ListTenants(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestMalformedEnvelopeIsDecodeError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>gateway error</html>"},
		{"missing data field", `{"message":"ok"}`},
		{"wrong data shape", `{"data":{"name":"not-a-list"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			_, err := client.ListTenants(context.Background())
			require.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestSlowBackendIsTimeout(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	client.cfg.TimeoutMs = 50

	_, err := client.ListTenants(context.Background())
	require.ErrorIs(t, err, ErrTimeout)
}

func TestLoginReturnsUserAndToken(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin@example.com", req["email"])
		writeEnvelope(w, map[string]any{
			"user":  domain.User{ID: "u-1", Name: "Admin", Role: domain.RoleAdmin},
			"token": "tok-new",
		})
	})

	result, err := client.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-new", result.Token)
	assert.Equal(t, domain.RoleAdmin, result.User.Role)
}

type captureObserver struct {
	events []CallEvent
}

func (o *captureObserver) OnCallComplete(e CallEvent) { o.events = append(o.events, e) }

func TestObserverSeesEveryCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tenants" {
			writeEnvelope(w, []domain.Tenant{})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	obs := &captureObserver{}
	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	client := NewClient(cfg, &stubTokens{}, obs, nil)

	_, _ = client.ListTenants(context.Background())
	_, _ = client.GetPermit(context.Background(), "missing")

	require.Len(t, obs.events, 2)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, http.StatusOK, obs.events[0].Status)
	assert.False(t, obs.events[1].Success)
	assert.Equal(t, "NOT_FOUND", obs.events[1].ErrorCode)
	assert.GreaterOrEqual(t, obs.events[1].LatencyMs, int64(0))
}

func TestAvailable(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	assert.True(t, client.Available(context.Background()))

	down, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.False(t, down.Available(context.Background()))
}
