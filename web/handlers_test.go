package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/streammon/control/auth"
	"github.com/streammon/control/coordinator"
	"github.com/streammon/control/forms"
	"github.com/streammon/control/registry"
	"github.com/streammon/control/store"
	"github.com/streammon/control/structures"
	"github.com/streammon/control/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testKey = "test-signing-key"

func newTestServer(t *testing.T, mem *store.Memory) (*Server, *coordinator.Coordinator) {
	t.Helper()

	stores := mem.Stores()
	coord := coordinator.New(stores.Globals, nil)

	srv := NewServer(testKey,
		WithStreams(registry.NewStreams(stores.Streams, coord)),
		WithUsers(registry.NewUsers(stores.Users, coord)),
		WithReader(telemetry.NewReader(stores.Streams, stores.Reports, stores.Images, stores.Alerts)),
		WithVerifier(auth.NewVerifier(stores.Users)),
	)

	return srv, coord
}

func login(t *testing.T, srv *Server) *http.Cookie {
	t.Helper()

	form := url.Values{"username": {"ops"}, "password": {"s3cret"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func seedUser(t *testing.T, mem *store.Memory) {
	t.Helper()
	_, err := mem.Stores().Users.Insert(context.Background(), structures.User{
		Username: "ops", Password: "s3cret", Enabled: true,
	})
	require.NoError(t, err)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	mem := store.NewMemory()
	seedUser(t, mem)
	srv, _ := newTestServer(t, mem)

	form := url.Values{"username": {"ops"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	mem := store.NewMemory()
	srv, _ := newTestServer(t, mem)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestModifyStreamsCreatesAndSignalsRestart(t *testing.T) {
	mem := store.NewMemory()
	seedUser(t, mem)
	srv, coord := newTestServer(t, mem)
	cookie := login(t, srv)

	form := url.Values{
		forms.FieldID:      {""},
		forms.FieldTitle:   {"Lobby"},
		forms.FieldURI:     {"rtsp://a"},
		forms.FieldAudio:   {"0"},
		forms.FieldEnabled: {"1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/streams", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2; url=/", rec.Header().Get("Refresh"))

	var result registry.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, 1, result.Applied)

	configs, err := mem.Stores().Streams.List(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "Lobby", configs[0].Title)

	due, err := coord.RestartDue(context.Background())
	require.NoError(t, err)
	assert.True(t, due)
}

func TestModifyUsersReportsInvalidRow(t *testing.T) {
	mem := store.NewMemory()
	seedUser(t, mem)
	srv, _ := newTestServer(t, mem)
	cookie := login(t, srv)

	form := url.Values{
		forms.FieldID:            {""},
		forms.FieldUsername:      {"newbie"},
		forms.FieldPassword1:     {"x"},
		forms.FieldPassword2:     {"y"},
		forms.FieldPushoverID:    {""},
		forms.FieldPushoverToken: {""},
		forms.FieldEnabled:       {"1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result registry.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, 0, result.Applied)
	require.Len(t, result.Rows, 1)
	assert.NotEmpty(t, result.Rows[0].Error)

	users, err := mem.Stores().Users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1, "only the seeded login user exists")
}

func TestDashboardView(t *testing.T) {
	mem := store.NewMemory()
	seedUser(t, mem)

	_, err := mem.Stores().Streams.Insert(context.Background(), structures.StreamConfig{
		Title: "Lobby", URI: "rtsp://a", Enabled: true,
	})
	require.NoError(t, err)
	mem.PutReport(structures.StreamReport{Title: "Lobby", Status: "Monitoring"})

	srv, _ := newTestServer(t, mem)
	cookie := login(t, srv)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Streams []telemetry.DashboardRow `json:"streams"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Streams, 1)
	assert.Equal(t, "Monitoring", body.Streams[0].Status)
}

func TestAlertsViewLimit(t *testing.T) {
	mem := store.NewMemory()
	seedUser(t, mem)

	for i := 0; i < 4; i++ {
		mem.PutAlert(structures.StreamAlert{Timestamp: "2026-08-28 12:00:0" + string(rune('0'+i)), Stream: "Lobby", Alert: "freeze"})
	}

	srv, _ := newTestServer(t, mem)
	cookie := login(t, srv)

	req := httptest.NewRequest(http.MethodGet, "/alerts?limit=2", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Alerts []structures.StreamAlert `json:"alerts"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.Alerts, 2)
}

// downStreams refuses every call like a lost database connection.
type downStreams struct{}

var errStoreDown = fmt.Errorf("store unreachable")

func (downStreams) List(_ context.Context) ([]structures.StreamConfig, error) {
	return nil, errStoreDown
}

func (downStreams) Insert(_ context.Context, _ structures.StreamConfig) (primitive.ObjectID, error) {
	return primitive.NilObjectID, errStoreDown
}

func (downStreams) Update(_ context.Context, _ primitive.ObjectID, _ structures.StreamConfig) error {
	return errStoreDown
}

func (downStreams) Delete(_ context.Context, _ primitive.ObjectID) error {
	return errStoreDown
}

func newDownStreamsServer(t *testing.T, mem *store.Memory) *Server {
	t.Helper()

	stores := mem.Stores()
	coord := coordinator.New(stores.Globals, nil)

	return NewServer(testKey,
		WithStreams(registry.NewStreams(downStreams{}, coord)),
		WithUsers(registry.NewUsers(stores.Users, coord)),
		WithReader(telemetry.NewReader(downStreams{}, stores.Reports, stores.Images, stores.Alerts)),
		WithVerifier(auth.NewVerifier(stores.Users)),
	)
}

func TestModifyStreamsStoreFailureIsFatal(t *testing.T) {
	mem := store.NewMemory()
	seedUser(t, mem)
	srv := newDownStreamsServer(t, mem)
	cookie := login(t, srv)

	form := url.Values{
		forms.FieldID:      {""},
		forms.FieldTitle:   {"Lobby"},
		forms.FieldURI:     {"rtsp://a"},
		forms.FieldAudio:   {"0"},
		forms.FieldEnabled: {"1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/streams", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, rec.Header().Get("Refresh"), "a failed submission must not schedule a dashboard reload")

	due, err := coordinator.New(mem.Stores().Globals, nil).RestartDue(context.Background())
	require.NoError(t, err)
	assert.False(t, due, "no restart flag is raised when the store rejected the submission")
}

func TestDashboardStoreFailureIsFatal(t *testing.T) {
	mem := store.NewMemory()
	seedUser(t, mem)
	srv := newDownStreamsServer(t, mem)
	cookie := login(t, srv)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.NotEmpty(t, body["error"], "a systemic store failure presents a single fatal message")
}

func TestHealthz(t *testing.T) {
	mem := store.NewMemory()
	srv, _ := newTestServer(t, mem)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
