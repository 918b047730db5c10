package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"learning_platform/internal/models"
	"learning_platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, testCORS(), nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/w", 1 * time.Second},
		{"interval_string_valid", "/w?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/w?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/w?interval=20s", 1 * time.Second},
		{"interval_ms_too_large", "/w?interval_ms=20000", 1 * time.Second},
		{"interval_ms_invalid", "/w?interval_ms=NaN", 1 * time.Second},
		{"both_present_invalid_interval_ms_used", "/w?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tc.u, nil)
			assert.Equal(t, tc.want, h.parseInterval(c))
		})
	}
}

type wsFrame struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func dialWatch(t *testing.T, srv *httptest.Server, moduleID string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/modules/" + moduleID + "/watch?interval_ms=20"
	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	return dialer.Dial(u, authHeader("tok"))
}

func TestWatchModule_PushesChangesThenDeleted(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	v1 := models.Module{ID: "m1", Title: "v1", Exercises: []models.Exercise{}, UpdatedAt: t0}
	v2 := models.Module{ID: "m1", Title: "v2", Exercises: []models.Exercise{}, UpdatedAt: t0.Add(time.Second)}

	var calls atomic.Int32
	modules := &mockModules{getFn: func(string) (models.Module, error) {
		switch n := calls.Add(1); {
		case n <= 2:
			return v1, nil
		case n <= 4:
			return v2, nil
		default:
			return models.Module{}, service.ErrNotFound
		}
	}}
	srv := httptest.NewServer(newTestRouter(&service.Service{Authorization: validAuth(), Modules: modules}))
	defer srv.Close()

	conn, _, err := dialWatch(t, srv, "m1")
	require.NoError(t, err)
	defer conn.Close()

	read := func() wsFrame {
		var f wsFrame
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		require.NoError(t, conn.ReadJSON(&f))
		return f
	}

	f := read()
	require.Equal(t, frameModule, f.Type)
	var got models.Module
	require.NoError(t, json.Unmarshal(f.Data, &got))
	assert.Equal(t, "v1", got.Title)

	// the unchanged poll is skipped; next frame is v2
	f = read()
	require.Equal(t, frameModule, f.Type)
	require.NoError(t, json.Unmarshal(f.Data, &got))
	assert.Equal(t, "v2", got.Title)

	f = read()
	assert.Equal(t, frameDeleted, f.Type)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "expected normal close, got %v", err)
}

func TestWatchModule_UnknownModuleIs404(t *testing.T) {
	modules := &mockModules{err: service.ErrNotFound}
	srv := httptest.NewServer(newTestRouter(&service.Service{Authorization: validAuth(), Modules: modules}))
	defer srv.Close()

	_, resp, err := dialWatch(t, srv, "nope")
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpgraderOriginCheck(t *testing.T) {
	h := NewHandler(&service.Service{}, testCORS("http://app.example"), nil)
	up := h.upgrader()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, up.CheckOrigin(req), "no origin header")

	req.Header.Set("Origin", "http://app.example")
	assert.True(t, up.CheckOrigin(req))

	req.Header.Set("Origin", "http://evil.example")
	assert.False(t, up.CheckOrigin(req))
}
