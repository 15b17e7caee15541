package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/lgbarn/tilechess-go/internal/config"
	"github.com/lgbarn/tilechess-go/internal/engine"
	"github.com/lgbarn/tilechess-go/internal/testutil"
	"github.com/lgbarn/tilechess-go/internal/tilemap"
)

const ladderFEN = "R4k2/R7/8/8/8/8/8/K7 b - - 0 1"

func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()
	var access bytes.Buffer
	return NewServer(config.NewServerConfig(), nil, &access), &access
}

func post(t *testing.T, h http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body: %v\n%s", err, rr.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	srv, access := newTestServer(t)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", rr.Code, rr.Body.String())
	}
	if !strings.Contains(access.String(), "GET /healthz") {
		t.Errorf("access log missing request: %q", access.String())
	}
}

func TestAnalyze(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("tile map", func(t *testing.T) {
		rr := post(t, srv.Handler(), "/api/analyze", map[string]string{"tilemap": tilemap.DefaultMap()})
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
		}
		var report struct {
			ToMove string `json:"to_move"`
			Status string `json:"status"`
			FEN    string `json:"fen"`
			White  struct {
				Moves int `json:"moves"`
			} `json:"white"`
		}
		decodeBody(t, rr, &report)
		testutil.AssertEqual(t, report.ToMove, "White")
		testutil.AssertEqual(t, report.Status, "none")
		testutil.AssertEqual(t, report.FEN, engine.InitialFEN)
		testutil.AssertEqual(t, report.White.Moves, 20)
	})

	t.Run("fen mate", func(t *testing.T) {
		rr := post(t, srv.Handler(), "/api/analyze", map[string]string{"fen": ladderFEN})
		var report struct {
			Status string `json:"status"`
			Black  struct {
				Mated bool `json:"mated"`
			} `json:"black"`
		}
		decodeBody(t, rr, &report)
		if report.Status != "checkmate" || !report.Black.Mated {
			t.Errorf("report = %+v", report)
		}
	})

	t.Run("black to move on a small board", func(t *testing.T) {
		grid := "|b_ki|none|none|none|\n|none|none|none|none|\n|none|none|none|none|\n|w_ki|none|none|none|\n"
		rr := post(t, srv.Handler(), "/api/analyze", map[string]interface{}{
			"tilemap": grid, "to_move": "b", "first": 0, "last": 3,
		})
		var report struct {
			ToMove string `json:"to_move"`
			FEN    string `json:"fen"`
		}
		decodeBody(t, rr, &report)
		if report.ToMove != "Black" || report.FEN != "" {
			t.Errorf("report = %+v", report)
		}
	})
}

func TestAnalyze_BadRequests(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name     string
		body     interface{}
		wantCode int
		wantErr  string
	}{
		{"invalid json", "{", http.StatusBadRequest, "invalid json"},
		{"empty position", map[string]string{}, http.StatusBadRequest, "invalid tile map"},
		{"bad fen", map[string]string{"fen": "nonsense"}, http.StatusBadRequest, "invalid FEN"},
		{"bad colour", map[string]string{"tilemap": tilemap.DefaultMap(), "to_move": "red"}, http.StatusBadRequest, "to_move"},
		{"strict", map[string]interface{}{"tilemap": "|w_xx|", "strict": true}, http.StatusBadRequest, "invalid tile map"},
		{"bad board", map[string]interface{}{"tilemap": "|none|", "first": 5, "last": 1}, http.StatusBadRequest, "invalid board"},
		{"board at int8 top", map[string]interface{}{"tilemap": "|none|", "first": 120, "last": 127}, http.StatusBadRequest, "invalid board"},
		{"board at int8 bottom", map[string]interface{}{"tilemap": "|none|", "first": -128, "last": -121}, http.StatusBadRequest, "invalid board"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(t, srv.Handler(), "/api/analyze", tt.body)
			if rr.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantCode)
			}
			var body struct {
				Error string `json:"error"`
			}
			decodeBody(t, rr, &body)
			testutil.AssertContains(t, body.Error, tt.wantErr)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	cfg := config.NewServerConfig()
	cfg.MaxBodyBytes = 64
	srv := NewServer(cfg, nil, nil)

	body := `{"tilemap":"` + strings.Repeat("|none|", 100) + `"}`
	rr := post(t, srv.Handler(), "/api/analyze", body)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rr.Code)
	}
}

func TestDestinations(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := post(t, srv.Handler(), "/api/destinations", map[string]string{
		"fen":  "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1",
		"cell": "e1",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var resp destinationsResponse
	decodeBody(t, rr, &resp)
	testutil.AssertEqual(t, resp.Piece, "w_ki")
	// The undefended rook may be taken; d2 and f2 lie on its rank.
	sort.Strings(resp.Destinations)
	sort.Strings(resp.Safe)
	testutil.AssertEqual(t, resp.Destinations, []string{"d1", "e2", "f1"})
	testutil.AssertEqual(t, resp.Safe, []string{"d1", "e2", "f1"})

	t.Run("empty cell", func(t *testing.T) {
		rr := post(t, srv.Handler(), "/api/destinations", map[string]string{
			"tilemap": tilemap.DefaultMap(),
			"cell":    "e4",
		})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rr.Code)
		}
	})

	t.Run("off board", func(t *testing.T) {
		rr := post(t, srv.Handler(), "/api/destinations", map[string]string{
			"tilemap": tilemap.DefaultMap(),
			"cell":    "z9",
		})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rr.Code)
		}
	})
}

func TestApply(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("capture", func(t *testing.T) {
		rr := post(t, srv.Handler(), "/api/apply", map[string]string{
			"fen": "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "from": "e4", "to": "d5",
		})
		var resp applyResponse
		decodeBody(t, rr, &resp)
		if !resp.Legal || resp.OwnKingInCheck {
			t.Errorf("resp = %+v", resp)
		}
		testutil.AssertEqual(t, resp.Piece, "w_pa")
		testutil.AssertEqual(t, resp.Captured, "b_pa")
		testutil.AssertEqual(t, resp.FEN, "4k3/8/8/3P4/8/8/8/4K3 b - - 0 1")
	})

	t.Run("pinned piece", func(t *testing.T) {
		rr := post(t, srv.Handler(), "/api/apply", map[string]string{
			"fen": "4r1k1/8/8/8/8/8/4B3/4K3 w - - 0 1", "from": "e2", "to": "d3",
		})
		var resp applyResponse
		decodeBody(t, rr, &resp)
		if !resp.Legal || !resp.OwnKingInCheck {
			t.Errorf("resp = %+v, want legal pattern that exposes the king", resp)
		}
	})

	t.Run("outside pattern", func(t *testing.T) {
		rr := post(t, srv.Handler(), "/api/apply", map[string]string{
			"tilemap": tilemap.DefaultMap(), "from": "e2", "to": "e5",
		})
		var resp applyResponse
		decodeBody(t, rr, &resp)
		if resp.Legal {
			t.Error("e2-e5 should not be legal")
		}
	})

	t.Run("mating move", func(t *testing.T) {
		rr := post(t, srv.Handler(), "/api/apply", map[string]string{
			"fen": "5k2/R7/8/8/8/8/8/1R5K w - - 0 1", "from": "b1", "to": "b8",
		})
		var resp applyResponse
		decodeBody(t, rr, &resp)
		testutil.AssertEqual(t, resp.Status, "checkmate")
	})
}

func TestConvert(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := post(t, srv.Handler(), "/api/convert", map[string]string{"fen": engine.InitialFEN})
	var resp convertResponse
	decodeBody(t, rr, &resp)
	testutil.AssertEqual(t, resp.TileMap, tilemap.DefaultMap())
	testutil.AssertEqual(t, resp.FEN, engine.InitialFEN)

	rr = post(t, srv.Handler(), "/api/convert", map[string]string{"tilemap": resp.TileMap})
	var back convertResponse
	decodeBody(t, rr, &back)
	testutil.AssertEqual(t, back, resp)
}

func TestRouting(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/analyze", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/analyze = %d, want 405", rr.Code)
	}

	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("GET /nowhere = %d, want 404", rr.Code)
	}
}

func TestListenAndServe_Shutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	cfg := config.NewServerConfig()
	cfg.Addr = addr
	srv := NewServer(cfg, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/healthz")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		cancel()
		t.Fatalf("server never came up: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
