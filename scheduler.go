package main

import (
	"cmp"
	"slices"
	"time"
)

// TaskID identifies a scheduled task. Ids are never reused, so an id held
// across a Reset cannot cancel a newer task.
type TaskID uint64

type task struct {
	id  TaskID
	due time.Duration
	fn  func()
}

// Scheduler runs deferred callbacks in game time. Callbacks only run inside
// Advance, which the frame update calls, so they never race the frame.
type Scheduler struct {
	now   time.Duration
	next  TaskID
	tasks []task
	batch map[TaskID]bool // tasks of the running Advance; false once cancelled
}

// NewScheduler creates an empty scheduler at time zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns elapsed game time
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once d of game time has passed
func (s *Scheduler) After(d time.Duration, fn func()) TaskID {
	s.next++
	s.tasks = append(s.tasks, task{id: s.next, due: s.now + d, fn: fn})
	return s.next
}

// Cancel drops a pending task. Unknown or already-run ids are ignored.
func (s *Scheduler) Cancel(id TaskID) {
	if id == 0 {
		return
	}
	if _, ok := s.batch[id]; ok {
		s.batch[id] = false
	}
	s.tasks = slices.DeleteFunc(s.tasks, func(t task) bool { return t.id == id })
}

// Pending reports whether the task is still waiting
func (s *Scheduler) Pending(id TaskID) bool {
	return slices.ContainsFunc(s.tasks, func(t task) bool { return t.id == id })
}

// Len returns the number of pending tasks
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Advance moves game time forward and runs every task that came due, in due
// order. Tasks scheduled by a callback run no earlier than the next Advance.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}

	var due []task
	s.tasks = slices.DeleteFunc(s.tasks, func(t task) bool {
		if t.due <= s.now {
			due = append(due, t)
			return true
		}
		return false
	})
	if len(due) == 0 {
		return
	}
	slices.SortFunc(due, func(a, b task) int {
		if c := cmp.Compare(a.due, b.due); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	s.batch = make(map[TaskID]bool, len(due))
	for _, t := range due {
		s.batch[t.id] = true
	}
	for _, t := range due {
		if !s.batch[t.id] {
			continue
		}
		t.fn()
	}
	s.batch = nil
}

// Reset drops every pending task, including the rest of a running batch,
// and rewinds game time
func (s *Scheduler) Reset() {
	s.tasks = nil
	s.now = 0
	for id := range s.batch {
		s.batch[id] = false
	}
}
