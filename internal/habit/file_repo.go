package habit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileRepo persists the habit collection as one flat JSON list.
// Every mutation rewrites the whole file so the on-disk state is always
// a consistent snapshot.
type FileRepo struct {
	mu     sync.RWMutex
	path   string
	habits []Habit
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{path: filepath.Join(dataDir, "habits.json")}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.habits = []Habit{}
			return nil
		}
		return err
	}

	var loaded []Habit
	if err := json.Unmarshal(b, &loaded); err != nil {
		// Unparseable state is not fatal; start from defaults.
		r.habits = []Habit{}
		return nil
	}
	for i := range loaded {
		loaded[i] = repair(loaded[i])
	}
	r.habits = loaded
	return nil
}

// repair fills in fields absent from records written by older versions.
func repair(h Habit) Habit {
	if h.History == nil {
		h.History = []string{}
	}
	if h.Streak < 0 {
		h.Streak = 0
	}
	if h.XP < 0 {
		h.XP = 0
	}
	return h
}

func (r *FileRepo) saveLocked() error {
	b, err := json.MarshalIndent(r.habits, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}

func (r *FileRepo) Create(h Habit) (Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.habits = append(r.habits, h.Clone())
	return h, r.saveLocked()
}

func (r *FileRepo) Get(id string) (Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.habits {
		if h.ID == id {
			return h.Clone(), nil
		}
	}
	return Habit{}, ErrNotFound
}

func (r *FileRepo) List() ([]Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return CloneAll(r.habits), nil
}

func (r *FileRepo) Update(h Habit) (Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.habits {
		if r.habits[i].ID == h.ID {
			r.habits[i] = h.Clone()
			return h, r.saveLocked()
		}
	}
	return Habit{}, ErrNotFound
}

func (r *FileRepo) ApplyPatch(id string, p Patch) (Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.habits {
		if r.habits[i].ID == id {
			h := r.habits[i].Clone()
			p.applyTo(&h)
			r.habits[i] = h
			return h.Clone(), r.saveLocked()
		}
	}
	return Habit{}, ErrNotFound
}

func (r *FileRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.habits {
		if r.habits[i].ID == id {
			r.habits = append(r.habits[:i], r.habits[i+1:]...)
			return r.saveLocked()
		}
	}
	return ErrNotFound
}

func (r *FileRepo) ReplaceAll(hs []Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.habits = CloneAll(hs)
	return r.saveLocked()
}
