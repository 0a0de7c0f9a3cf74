package engine

import "time"

// Task is a suspendable behavior advanced once per tick
// Tick returns false when the task has finished
type Task interface {
	Tick(dt time.Duration) bool
}

// TaskFunc adapts a function to Task
type TaskFunc func(dt time.Duration) bool

func (f TaskFunc) Tick(dt time.Duration) bool { return f(dt) }

// Handle identifies a started task; the zero Handle refers to nothing
type Handle uint64

type taskEntry struct {
	id        Handle
	name      string
	task      Task
	cancelled bool
}

// Scheduler advances cooperative tasks on a single game timeline
//
// Semantics:
//   - Tasks tick in start order
//   - A task started during Advance first ticks on the next Advance
//   - A cancelled task never ticks again, even later in the same Advance
//   - Finished and cancelled tasks are released at the end of Advance
//
// Not safe for concurrent use; the owning loop is the only caller
type Scheduler struct {
	tasks []*taskEntry
	byID  map[Handle]*taskEntry
	next  Handle

	frame int64
	now   time.Duration
}

// NewScheduler creates an empty scheduler at frame 0, time 0
func NewScheduler() *Scheduler {
	return &Scheduler{
		tasks: make([]*taskEntry, 0, 8),
		byID:  make(map[Handle]*taskEntry),
	}
}

// Start registers a task and returns its cancellation handle
func (s *Scheduler) Start(name string, t Task) Handle {
	s.next++
	e := &taskEntry{id: s.next, name: name, task: t}
	s.tasks = append(s.tasks, e)
	s.byID[e.id] = e
	return e.id
}

// Cancel stops a task; returns true if it was still running
func (s *Scheduler) Cancel(h Handle) bool {
	e, ok := s.byID[h]
	if !ok || e.cancelled {
		return false
	}
	e.cancelled = true
	delete(s.byID, h)
	return true
}

// CancelAll stops every running task
func (s *Scheduler) CancelAll() {
	for id, e := range s.byID {
		e.cancelled = true
		delete(s.byID, id)
	}
}

// Running reports whether the task behind h is still scheduled
func (s *Scheduler) Running(h Handle) bool {
	_, ok := s.byID[h]
	return ok
}

// Advance moves time forward by dt and ticks every live task once
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.frame++
	s.now += dt

	// Snapshot length: tasks appended during this pass wait for the next one
	n := len(s.tasks)
	for i := 0; i < n; i++ {
		e := s.tasks[i]
		if e.cancelled {
			continue
		}
		if !e.task.Tick(dt) {
			e.cancelled = true
			delete(s.byID, e.id)
		}
	}

	live := s.tasks[:0]
	for _, e := range s.tasks {
		if !e.cancelled {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

// Frame returns the number of Advance calls so far
func (s *Scheduler) Frame() int64 {
	return s.frame
}

// Now returns accumulated timeline time
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Len returns the number of live tasks
func (s *Scheduler) Len() int {
	return len(s.byID)
}

// Names returns live task names in start order, for diagnostics
func (s *Scheduler) Names() []string {
	names := make([]string, 0, len(s.byID))
	for _, e := range s.tasks {
		if !e.cancelled {
			names = append(names, e.name)
		}
	}
	return names
}
