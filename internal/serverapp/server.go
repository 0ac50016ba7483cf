package serverapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Egnoel/habitQuest/internal/category"
	"github.com/Egnoel/habitQuest/internal/config"
	"github.com/Egnoel/habitQuest/internal/habit"
	"github.com/Egnoel/habitQuest/internal/httpmw"
	"github.com/Egnoel/habitQuest/internal/progression"
	"github.com/Egnoel/habitQuest/internal/settings"
	"github.com/Egnoel/habitQuest/internal/stats"
	"github.com/Egnoel/habitQuest/internal/user"
)

type Options struct {
	Config *config.Config
	Logger *zap.SugaredLogger

	// Clock and Tips default to the real implementations; tests inject
	// fakes here.
	Clock progression.Clock
	Tips  progression.TipFetcher
}

// App owns the wired session state. LastTip is a display-only field fed
// by the fire-and-forget tip fetch.
type App struct {
	Engine *progression.Engine

	mu      sync.RWMutex
	lastTip string
}

func (a *App) setTip(t string) {
	a.mu.Lock()
	a.lastTip = t
	a.mu.Unlock()
}

func (a *App) tip() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastTip
}

func NewHandler(opts Options) (http.Handler, *App, error) {
	if opts.Config == nil {
		return nil, nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Clock == nil {
		opts.Clock = progression.RealClock{}
	}

	cfg := opts.Config
	dataDir := cfg.Server.DataDir
	if strings.TrimSpace(dataDir) == "" {
		dataDir = "data"
	}

	habitRepo, err := habit.NewFileRepo(dataDir)
	if err != nil {
		return nil, nil, err
	}
	userRepo, err := user.NewFileRepo(dataDir)
	if err != nil {
		return nil, nil, err
	}
	categoryRepo, err := category.NewFileRepo(dataDir, cfg.Categories)
	if err != nil {
		return nil, nil, err
	}
	settingsRepo, err := settings.NewFileRepo(dataDir)
	if err != nil {
		return nil, nil, err
	}

	app := &App{}
	engine := &progression.Engine{
		Habits: habitRepo,
		Users:  userRepo,
		Combo:  progression.NewComboTracker(),
		Undo:   progression.NewLedger(time.Duration(cfg.Progression.UndoWindowMS) * time.Millisecond),
		Ranks:  progression.NewRankTable(cfg.Ranks),
		Clock:  opts.Clock,
		Tuning: cfg.Progression,
		Logger: opts.Logger,
		Tips:   opts.Tips,
		OnTip:  app.setTip,
	}
	app.Engine = engine

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "habitquest",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	habitHandler := habit.NewHandler(habitRepo)
	habitHandler.SetCompleter(func(ctx context.Context, id string) (any, error) {
		return engine.CompleteHabit(ctx, id)
	})
	mux.HandleFunc("/api/habits", habitHandler.HabitsRoot)
	mux.HandleFunc("/api/habits/", habitHandler.HabitsSub)

	userHandler := user.NewHandler(userRepo)
	mux.HandleFunc("/api/user", userHandler.State)

	categoryHandler := category.NewHandler(categoryRepo, habitRepo)
	mux.HandleFunc("/api/categories", categoryHandler.Root)
	mux.HandleFunc("/api/categories/progress", categoryHandler.Progress)

	mux.HandleFunc("/api/undo", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		restored, err := engine.UndoLast(r.Context())
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"restored": restored})
	})

	mux.HandleFunc("/api/undo/dismiss", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		engine.Undo.Discard()
		writeJSON(w, http.StatusOK, map[string]any{"dismissed": true})
	})

	mux.HandleFunc("/api/ranks", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, engine.Ranks.Tiers())
	})

	mux.HandleFunc("/api/stats/xp-by-day", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		hs, err := habitRepo.List()
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		series := stats.XPByDay(hs, opts.Clock.Today(), 7, cfg.Progression.XPPerCheckin)
		writeJSON(w, http.StatusOK, map[string]any{
			"days":          series,
			"movingAverage": stats.MovingAverage(series),
		})
	})

	mux.HandleFunc("/api/tip", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"tip": app.tip()})
	})

	mux.HandleFunc("/api/settings/view", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			v, err := settingsRepo.View()
			if err != nil {
				writeErr(w, http.StatusInternalServerError, err.Error())
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"view": v})
		case http.MethodPut:
			var in struct {
				View settings.View `json:"view"`
			}
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				writeErr(w, http.StatusBadRequest, "bad json")
				return
			}
			if err := settingsRepo.SetView(in.View); err != nil {
				writeErr(w, http.StatusInternalServerError, err.Error())
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"view": in.View})
		default:
			writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	handler := httpmw.Chain(mux,
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
		httpmw.WithAccessLog(opts.Logger),
	)
	return handler, app, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
