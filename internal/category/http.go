package category

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Egnoel/habitQuest/internal/habit"
)

type Handler struct {
	repo   *FileRepo
	habits habit.Repo
}

func NewHandler(repo *FileRepo, habits habit.Repo) *Handler {
	return &Handler{repo: repo, habits: habits}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// /api/categories
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cats, err := h.repo.List()
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, cats)
		return

	case http.MethodPost:
		var in Category
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		if strings.TrimSpace(in.Name) == "" {
			writeErr(w, 400, "name is required")
			return
		}
		if err := h.repo.Add(in); err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 201, in)
		return

	case http.MethodDelete:
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if name == "" {
			writeErr(w, 400, "name is required")
			return
		}
		err := h.repo.Remove(name)
		if err == ErrNotFound {
			writeErr(w, 404, "not found")
			return
		}
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, map[string]any{"deleted": name})
		return

	default:
		writeErr(w, 405, "method not allowed")
		return
	}
}

// /api/categories/progress
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	cats, err := h.repo.List()
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	hs, err := h.habits.List()
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, Aggregate(cats, hs))
}
