package facefeed

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/pigface"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    pigface.FaceFrame
		wantErr bool
	}{
		{
			name: "full frame",
			in:   `{"timestamp":1500.5,"detected":true,"landmark":{"x":0.25,"y":0.75},"blink":{"left":0.9,"right":0.8}}`,
			want: pigface.FaceFrame{
				Timestamp:  1500*time.Millisecond + 500*time.Microsecond,
				Detected:   true,
				Landmark:   pigface.Vec2{X: 0.25, Y: 0.75},
				HasBlink:   true,
				BlinkLeft:  0.9,
				BlinkRight: 0.8,
			},
		},
		{
			name: "no face",
			in:   `{"timestamp":20,"detected":false}`,
			want: pigface.FaceFrame{Timestamp: 20 * time.Millisecond},
		},
		{
			name: "landmark without blink",
			in:   `{"timestamp":1,"detected":true,"landmark":{"x":0.5,"y":0.5}}`,
			want: pigface.FaceFrame{Timestamp: time.Millisecond, Detected: true, Landmark: pigface.Vec2{X: 0.5, Y: 0.5}},
		},
		{name: "detected without landmark", in: `{"timestamp":1,"detected":true}`, wantErr: true},
		{name: "negative timestamp", in: `{"timestamp":-1}`, wantErr: true},
		{name: "not json", in: `oink`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.in))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadFrame)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServerStoresLatestFrame(t *testing.T) {
	s := NewServer(zerolog.Nop())
	srv := httptest.NewServer(s.Handler("/face"))
	defer srv.Close()

	_, ok := s.Latest()
	assert.False(t, ok)

	conn := dial(t, srv, "/face")
	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"timestamp":10,"detected":true,"landmark":{"x":0.1,"y":0.2}}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`garbage`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"timestamp":20,"detected":true,"landmark":{"x":0.3,"y":0.4}}`)))

	require.Eventually(t, func() bool {
		return s.Status().Frames == 2
	}, 2*time.Second, 10*time.Millisecond)

	f, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, 20*time.Millisecond, f.Timestamp)
	assert.Equal(t, pigface.Vec2{X: 0.3, Y: 0.4}, f.Landmark)

	st := s.Status()
	assert.Equal(t, uint64(1), st.Dropped)
	assert.Equal(t, 1, st.Sessions)
	assert.Equal(t, 20.0, st.Last)
}

func TestServerStatusEndpoint(t *testing.T) {
	s := NewServer(zerolog.Nop())
	srv := httptest.NewServer(s.Handler("/face"))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	var st Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Equal(t, Status{}, st)
}

func TestServerSessionsCleanUp(t *testing.T) {
	s := NewServer(zerolog.Nop())
	srv := httptest.NewServer(s.Handler("/face"))
	defer srv.Close()

	conn := dial(t, srv, "/face")
	require.Eventually(t, func() bool { return s.Status().Sessions == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	require.Eventually(t, func() bool { return s.Status().Sessions == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestServeStopsOnCancel(t *testing.T) {
	s := NewServer(zerolog.Nop())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln, "/face") }()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/face", nil)
	require.NoError(t, err)
	defer conn.Close()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	// The server closed the session.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}
