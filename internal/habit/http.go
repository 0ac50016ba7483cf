package habit

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// CompleteFunc runs a completion through the progression engine. Injected
// by the server wiring to keep this package free of engine imports.
type CompleteFunc func(ctx context.Context, id string) (any, error)

type Handler struct {
	repo     Repo
	complete CompleteFunc
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) SetCompleter(fn CompleteFunc) {
	h.complete = fn
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

type Upsert struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Icon         string `json:"icon"`
	TargetStreak int    `json:"targetStreak"`
}

// /api/habits  (collection)
func (h *Handler) HabitsRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		hs, err := h.repo.List()
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		q := r.URL.Query()
		hs = FilterCategory(hs, q.Get("category"))
		Sort(hs, q.Get("sort"))
		writeJSON(w, 200, hs)
		return

	case http.MethodPost:
		var in Upsert
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		if strings.TrimSpace(in.Name) == "" {
			writeErr(w, 400, "name is required")
			return
		}
		created, err := h.repo.Create(New(in.Name, in.Description, in.Category, in.Icon, in.TargetStreak))
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 201, created)
		return

	default:
		writeErr(w, 405, "method not allowed")
		return
	}
}

// /api/habits/{id} and /api/habits/{id}/complete|pause
func (h *Handler) HabitsSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.TrimPrefix(r.URL.Path, "/api/habits/")
	tail = strings.Trim(tail, "/")
	if tail == "" {
		writeErr(w, 404, "not found")
		return
	}

	parts := strings.Split(tail, "/")
	id := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			cur, err := h.repo.Get(id)
			if err == ErrNotFound {
				writeErr(w, 404, "not found")
				return
			}
			if err != nil {
				writeErr(w, 500, err.Error())
				return
			}
			writeJSON(w, 200, cur)
			return

		case http.MethodPatch:
			var p Patch
			if err := decodeJSON(r, &p); err != nil {
				writeErr(w, 400, "bad json")
				return
			}
			if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
				writeErr(w, 400, "name cannot be empty")
				return
			}
			updated, err := h.repo.ApplyPatch(id, p)
			if err == ErrNotFound {
				writeErr(w, 404, "not found")
				return
			}
			if err != nil {
				writeErr(w, 500, err.Error())
				return
			}
			writeJSON(w, 200, updated)
			return

		case http.MethodDelete:
			err := h.repo.Delete(id)
			if err == ErrNotFound {
				writeErr(w, 404, "not found")
				return
			}
			if err != nil {
				writeErr(w, 500, err.Error())
				return
			}
			writeJSON(w, 200, map[string]any{"deleted": id})
			return

		default:
			writeErr(w, 405, "method not allowed")
			return
		}
	}

	if len(parts) == 2 {
		switch parts[1] {
		case "complete":
			if r.Method != http.MethodPost {
				writeErr(w, 405, "method not allowed")
				return
			}
			if h.complete == nil {
				writeErr(w, 500, "completion not wired")
				return
			}
			res, err := h.complete(r.Context(), id)
			if err != nil {
				writeErr(w, 500, err.Error())
				return
			}
			// Declined completions are ordinary 200s with applied=false.
			writeJSON(w, 200, res)
			return

		case "pause":
			if r.Method != http.MethodPost {
				writeErr(w, 405, "method not allowed")
				return
			}
			cur, err := h.repo.Get(id)
			if err == ErrNotFound {
				writeErr(w, 404, "not found")
				return
			}
			if err != nil {
				writeErr(w, 500, err.Error())
				return
			}
			paused := !cur.IsPaused
			updated, err := h.repo.ApplyPatch(id, Patch{IsPaused: &paused})
			if err != nil {
				writeErr(w, 500, err.Error())
				return
			}
			writeJSON(w, 200, updated)
			return
		}
	}

	writeErr(w, 404, "not found")
}
