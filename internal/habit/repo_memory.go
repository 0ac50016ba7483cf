package habit

import "sync"

// MemoryRepo keeps the collection in insertion order, mirroring the
// persisted flat list. Used by tests and as the FileRepo's core.
type MemoryRepo struct {
	mu     sync.RWMutex
	habits []Habit
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(h Habit) (Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.habits = append(r.habits, h.Clone())
	return h, nil
}

func (r *MemoryRepo) Get(id string) (Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.habits {
		if h.ID == id {
			return h.Clone(), nil
		}
	}
	return Habit{}, ErrNotFound
}

func (r *MemoryRepo) List() ([]Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return CloneAll(r.habits), nil
}

func (r *MemoryRepo) Update(h Habit) (Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.habits {
		if r.habits[i].ID == h.ID {
			r.habits[i] = h.Clone()
			return h, nil
		}
	}
	return Habit{}, ErrNotFound
}

func (r *MemoryRepo) ApplyPatch(id string, p Patch) (Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.habits {
		if r.habits[i].ID == id {
			h := r.habits[i].Clone()
			p.applyTo(&h)
			r.habits[i] = h
			return h.Clone(), nil
		}
	}
	return Habit{}, ErrNotFound
}

func (r *MemoryRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.habits {
		if r.habits[i].ID == id {
			r.habits = append(r.habits[:i], r.habits[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) ReplaceAll(hs []Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.habits = CloneAll(hs)
	return nil
}
