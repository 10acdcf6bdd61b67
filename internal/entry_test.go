package internal

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewHandler_Health(t *testing.T) {
	cfg := NewDefaultConfig()
	svc, err := NewService(cfg)
	if err != nil {
		t.Fatal(err)
	}
	h := newHandler(cfg, svc, nil)

	for _, path := range []string{"/health/live", "/health/ready"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
			t.Errorf("%s = %d %s", path, w.Code, w.Body.String())
		}
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/saka/1932/12/26", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "26, Phalguna 1932") {
		t.Errorf("api = %d %s", w.Code, w.Body.String())
	}
}

func TestNewHandler_Auth(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth = AuthConfig{Mode: AuthModeToken, Token: "tok"}
	svc, _ := NewService(cfg)
	h := newHandler(cfg, svc, nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/today", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("api without token = %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if w.Code != http.StatusOK {
		t.Errorf("health without token = %d", w.Code)
	}
}

func TestApplyReload(t *testing.T) {
	cfg := NewDefaultConfig()
	svc, _ := NewService(cfg)
	lvl := new(slog.LevelVar)

	next := NewDefaultConfig()
	next.App.LogLevel = slog.LevelWarn
	next.Clock.Timezone = "UTC"
	applyReload(next, lvl, svc, discardLogger())

	if lvl.Level() != slog.LevelWarn {
		t.Errorf("level = %v", lvl.Level())
	}
	if svc.Location().String() != "UTC" {
		t.Errorf("location = %v", svc.Location())
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	if err := Run(context.Background()); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.HTTP.Port = freePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, WithConfig(cfg), WithLogOutput(io.Discard))
	}()

	addr := "http://127.0.0.1" + cfg.App.HTTP.Address() + "/health/live"
	deadline := time.Now().Add(3 * time.Second)
	for {
		resp, err := http.Get(addr)
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not start: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}
