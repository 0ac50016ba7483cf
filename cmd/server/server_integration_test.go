package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Egnoel/habitQuest/internal/config"
	"github.com/Egnoel/habitQuest/internal/logging"
	"github.com/Egnoel/habitQuest/internal/progression"
	"github.com/Egnoel/habitQuest/internal/serverapp"
	"github.com/Egnoel/habitQuest/internal/tip"
)

type testApp struct {
	t       *testing.T
	handler http.Handler
	clock   *progression.FakeClock
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := config.Default()
	cfg.Server.DataDir = t.TempDir()

	clock := progression.NewFakeClock(time.Date(2026, 2, 7, 9, 0, 0, 0, time.UTC))
	handler, _, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: logging.Nop(),
		Clock:  clock,
		Tips:   tip.Static{Text: "Segue em frente, herói!"},
	})
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}
	return &testApp{t: t, handler: handler, clock: clock}
}

func (a *testApp) request(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestServer_Healthz(t *testing.T) {
	app := newTestApp(t)

	res := app.request(http.MethodGet, "/healthz", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

func TestServer_CompleteUndoFlow(t *testing.T) {
	app := newTestApp(t)

	created := decode[map[string]any](t, app.request(http.MethodPost, "/api/habits", map[string]any{
		"name":     "Ler 10 páginas",
		"category": "Aprendizado",
		"icon":     "📚",
	}))
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("expected a habit id, got %v", created)
	}

	res := app.request(http.MethodPost, "/api/habits/"+id+"/complete", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("complete expected 200, got %d body=%s", res.Code, res.Body.String())
	}
	out := decode[map[string]any](t, res)
	if out["applied"] != true {
		t.Fatalf("expected applied=true, got %v", out)
	}
	// 100 base + floor(1*1.1) streak bonus, no combo.
	award := out["award"].(map[string]any)
	if award["total"].(float64) != 101 {
		t.Fatalf("expected 101 xp, got %v", award["total"])
	}

	// Same-day repeat declines without touching state.
	repeat := decode[map[string]any](t, app.request(http.MethodPost, "/api/habits/"+id+"/complete", nil))
	if repeat["applied"] != false || repeat["reason"] != "already_done_today" {
		t.Fatalf("expected same-day decline, got %v", repeat)
	}

	undo := decode[map[string]any](t, app.request(http.MethodPost, "/api/undo", nil))
	if undo["restored"] != true {
		t.Fatalf("expected undo to restore, got %v", undo)
	}

	userOut := decode[map[string]any](t, app.request(http.MethodGet, "/api/user", nil))
	if userOut["xp"].(float64) != 0 || userOut["totalXp"].(float64) != 0 {
		t.Fatalf("expected progression back at zero after undo, got %v", userOut)
	}

	again := decode[map[string]any](t, app.request(http.MethodPost, "/api/undo", nil))
	if again["restored"] != false {
		t.Fatalf("undo with nothing pending must be a no-op, got %v", again)
	}
}

func TestServer_PausedHabitDeclinesCompletion(t *testing.T) {
	app := newTestApp(t)

	created := decode[map[string]any](t, app.request(http.MethodPost, "/api/habits", map[string]any{
		"name": "Correr",
	}))
	id := created["id"].(string)

	paused := decode[map[string]any](t, app.request(http.MethodPost, "/api/habits/"+id+"/pause", nil))
	if paused["isPaused"] != true {
		t.Fatalf("expected habit paused, got %v", paused)
	}

	out := decode[map[string]any](t, app.request(http.MethodPost, "/api/habits/"+id+"/complete", nil))
	if out["applied"] != false || out["reason"] != "paused" {
		t.Fatalf("expected paused decline, got %v", out)
	}
}

func TestServer_StreakContinuesNextDay(t *testing.T) {
	app := newTestApp(t)

	created := decode[map[string]any](t, app.request(http.MethodPost, "/api/habits", map[string]any{
		"name": "Meditar",
	}))
	id := created["id"].(string)

	first := decode[map[string]any](t, app.request(http.MethodPost, "/api/habits/"+id+"/complete", nil))
	if first["streak"].(float64) != 1 {
		t.Fatalf("expected streak 1, got %v", first["streak"])
	}

	app.clock.Advance(24 * time.Hour)
	second := decode[map[string]any](t, app.request(http.MethodPost, "/api/habits/"+id+"/complete", nil))
	if second["streak"].(float64) != 2 {
		t.Fatalf("expected streak 2, got %v", second["streak"])
	}
}

func TestServer_CreateRequiresName(t *testing.T) {
	app := newTestApp(t)

	res := app.request(http.MethodPost, "/api/habits", map[string]any{"name": "   "})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestServer_CategoriesSeededAndProgress(t *testing.T) {
	app := newTestApp(t)

	cats := decode[[]map[string]any](t, app.request(http.MethodGet, "/api/categories", nil))
	if len(cats) != 5 {
		t.Fatalf("expected 5 seeded categories, got %d", len(cats))
	}

	res := app.request(http.MethodGet, "/api/categories/progress", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("progress expected 200, got %d", res.Code)
	}
}

func TestServer_TipDeliveredAfterCompletion(t *testing.T) {
	app := newTestApp(t)

	created := decode[map[string]any](t, app.request(http.MethodPost, "/api/habits", map[string]any{
		"name": "Ler",
	}))
	id := created["id"].(string)
	app.request(http.MethodPost, "/api/habits/"+id+"/complete", nil)

	deadline := time.Now().Add(2 * time.Second)
	for {
		out := decode[map[string]any](t, app.request(http.MethodGet, "/api/tip", nil))
		if out["tip"] == "Segue em frente, herói!" {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("tip never surfaced, last=%v", out["tip"])
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServer_ViewSelectorPersists(t *testing.T) {
	app := newTestApp(t)

	out := decode[map[string]any](t, app.request(http.MethodGet, "/api/settings/view", nil))
	if out["view"] != "login" {
		t.Fatalf("expected initial view login, got %v", out["view"])
	}

	app.request(http.MethodPut, "/api/settings/view", map[string]any{"view": "dashboard"})
	out = decode[map[string]any](t, app.request(http.MethodGet, "/api/settings/view", nil))
	if out["view"] != "dashboard" {
		t.Fatalf("expected dashboard, got %v", out["view"])
	}
}
