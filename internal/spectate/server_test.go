package spectate

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/noseas/internal/games/noseas"
	"github.com/vovakirdan/noseas/internal/storage"
)

type fakeScores struct {
	mu      sync.Mutex
	entries []storage.ScoreEntry
	err     error
	limit   int
}

func (f *fakeScores) TopScores(gameID string, limit int) ([]storage.ScoreEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.entries) {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func (f *fakeScores) lastLimit() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.limit
}

func (f *fakeScores) resetLimit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limit = 0
}

func newTestServer(t *testing.T, scores ScoreSource) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	srv := NewServer(hub, scores, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		hub.Close()
		ts.Close()
	})
	return hub, ts
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, nil)

	var body map[string]any
	if code := getJSON(t, ts.URL+"/healthz", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	hub, ts := newTestServer(t, nil)

	if code := getJSON(t, ts.URL+"/api/snapshot", nil); code != http.StatusNotFound {
		t.Errorf("status before publish = %d, want 404", code)
	}

	hub.Publish(noseas.Snapshot{Mode: "playing", Score: 17, Speed: 1.3})

	var snap noseas.Snapshot
	if code := getJSON(t, ts.URL+"/api/snapshot", &snap); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if snap.Score != 17 || snap.Mode != "playing" || snap.Speed != 1.3 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestScoresEndpoint(t *testing.T) {
	src := &fakeScores{entries: []storage.ScoreEntry{
		{ID: 1, GameID: noseas.ID, Score: 40, AliveMs: 51000},
		{ID: 2, GameID: noseas.ID, Score: 22, AliveMs: 30000},
		{ID: 3, GameID: noseas.ID, Score: 5, AliveMs: 9000},
	}}
	_, ts := newTestServer(t, src)

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantCount int
		wantLimit int
	}{
		{"default limit", "", http.StatusOK, 3, defaultScoreLimit},
		{"explicit limit", "?limit=2", http.StatusOK, 2, 2},
		{"capped limit", "?limit=5000", http.StatusOK, 3, maxScoreLimit},
		{"bad limit", "?limit=abc", http.StatusBadRequest, 0, 0},
		{"zero limit", "?limit=0", http.StatusBadRequest, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src.resetLimit()
			var entries []storage.ScoreEntry
			var target any = &entries
			if tt.wantCode != http.StatusOK {
				target = nil
			}
			code := getJSON(t, ts.URL+"/api/scores"+tt.query, target)
			if code != tt.wantCode {
				t.Fatalf("status = %d, want %d", code, tt.wantCode)
			}
			if len(entries) != tt.wantCount {
				t.Errorf("entries = %d, want %d", len(entries), tt.wantCount)
			}
			if got := src.lastLimit(); got != tt.wantLimit {
				t.Errorf("store limit = %d, want %d", got, tt.wantLimit)
			}
		})
	}
}

func TestScoresEndpointErrors(t *testing.T) {
	_, ts := newTestServer(t, nil)
	if code := getJSON(t, ts.URL+"/api/scores", nil); code != http.StatusServiceUnavailable {
		t.Errorf("nil store status = %d, want 503", code)
	}

	_, ts = newTestServer(t, &fakeScores{err: errors.New("disk on fire")})
	if code := getJSON(t, ts.URL+"/api/scores", nil); code != http.StatusInternalServerError {
		t.Errorf("failing store status = %d, want 500", code)
	}
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitForViewers blocks until the hub has n subscribers.
func waitForViewers(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("viewers = %d, want %d", hub.SubscriberCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWebSocketJSON(t *testing.T) {
	hub, ts := newTestServer(t, nil)
	conn := dial(t, ts, "")
	waitForViewers(t, hub, 1)

	hub.Publish(noseas.Snapshot{Mode: "playing", Score: 9, Perk: "SHRINK"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if kind != websocket.TextMessage {
		t.Errorf("message type = %d, want text", kind)
	}
	var snap noseas.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if snap.Score != 9 || snap.Perk != "SHRINK" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestWebSocketMsgpack(t *testing.T) {
	hub, ts := newTestServer(t, nil)
	conn := dial(t, ts, "?format=msgpack")
	waitForViewers(t, hub, 1)

	hub.Publish(noseas.Snapshot{
		Mode:  "playing",
		Score: 4,
		Items: []noseas.ObstacleView{{Kind: "ATTACK", Taunt: "Boo!"}},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if kind != websocket.BinaryMessage {
		t.Errorf("message type = %d, want binary", kind)
	}
	var snap noseas.Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if snap.Score != 4 || len(snap.Items) != 1 || snap.Items[0].Taunt != "Boo!" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestWebSocketViewerLeaves(t *testing.T) {
	hub, ts := newTestServer(t, nil)
	conn := dial(t, ts, "")
	waitForViewers(t, hub, 1)

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	waitForViewers(t, hub, 0)
}

func TestWebSocketRejectsUnknownFormat(t *testing.T) {
	_, ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/ws?format=xml")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
