package choreo

import (
	"sync"
	"time"

	"github.com/go-drift/choreo/pkg/animation"
)

// Registry owns every timed task in the engine. Tasks are created on demand
// by id and live until the registry is disposed; callers hold controller
// handles but never create or dispose tasks themselves.
//
// All mutation is serialized through the registry's lock, so it is safe to
// share between the coordinator and the driver goroutine.
type Registry struct {
	mu       sync.Mutex
	tasks    map[string]*animation.Controller
	disposed bool
}

// NewRegistry creates an empty task registry.
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]*animation.Controller)}
}

// CreateOrReset returns the task registered under id, resetting it to idle
// and giving it the new duration, or allocates a new one. Returns nil once
// the registry has been disposed.
func (r *Registry) CreateOrReset(id string, duration time.Duration) *animation.Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return nil
	}
	if task, ok := r.tasks[id]; ok {
		task.Reset()
		task.SetDuration(duration)
		return task
	}
	task := animation.NewController(id, duration)
	r.tasks[id] = task
	return task
}

// Get looks up a task by id.
func (r *Registry) Get(id string) (*animation.Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	return task, ok
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// StopAll forces every task to a terminal, non-running state. Waiters on
// the tasks' completion channels are released.
func (r *Registry) StopAll() {
	for _, task := range r.snapshot() {
		task.Cancel()
	}
}

// ResetAll returns every task's value to its start value without disposing
// the handles.
func (r *Registry) ResetAll() {
	for _, task := range r.snapshot() {
		task.Reset()
	}
}

// PauseAll freezes every running task in place.
func (r *Registry) PauseAll() {
	for _, task := range r.snapshot() {
		task.Pause()
	}
}

// ResumeAll continues every paused task.
func (r *Registry) ResumeAll() {
	for _, task := range r.snapshot() {
		task.Resume()
	}
}

// DisposeAll releases every task handle. The registry is unusable afterward
// until re-initialized. Safe to call multiple times and with no tasks.
func (r *Registry) DisposeAll() {
	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		return
	}
	tasks := make([]*animation.Controller, 0, len(r.tasks))
	for _, task := range r.tasks {
		tasks = append(tasks, task)
	}
	r.tasks = nil
	r.disposed = true
	r.mu.Unlock()

	for _, task := range tasks {
		task.Dispose()
	}
}

// Disposed reports whether the registry has been torn down.
func (r *Registry) Disposed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disposed
}

func (r *Registry) snapshot() []*animation.Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	tasks := make([]*animation.Controller, 0, len(r.tasks))
	for _, task := range r.tasks {
		tasks = append(tasks, task)
	}
	return tasks
}
