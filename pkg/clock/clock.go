package clock

import (
	"sort"
	"time"
)

// Task is a one-shot callback waiting to run.
type Task interface {
	// Cancel stops the task from running. It returns false if the task
	// already ran or was already cancelled.
	Cancel() bool
	// Pending reports whether the task is still waiting to run.
	Pending() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

// TickScheduler is a Scheduler driven by explicit calls to Advance.
// Callbacks run on the goroutine that calls Advance, which lets the game
// loop own every mutation. It is not safe for concurrent use.
type TickScheduler struct {
	now    time.Duration
	nextID uint64
	tasks  []*tickTask
}

var _ Scheduler = &TickScheduler{}

type tickTask struct {
	id        uint64
	due       time.Duration
	fn        func()
	done      bool
	scheduler *TickScheduler
}

func NewTickScheduler() *TickScheduler {
	return &TickScheduler{
		tasks: make([]*tickTask, 0),
	}
}

// AfterFunc schedules f to run once the scheduler has advanced by d.
// A non-positive d runs on the next call to Advance.
func (s *TickScheduler) AfterFunc(d time.Duration, f func()) Task {
	if d < 0 {
		d = 0
	}
	s.nextID++
	t := &tickTask{
		id:        s.nextID,
		due:       s.now + d,
		fn:        f,
		scheduler: s,
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by dt and runs every task that became due,
// earliest first. Tasks scheduled by a callback run in the same call if they
// are already due. It returns the number of callbacks run.
func (s *TickScheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}
	ran := 0
	for {
		t := s.popDue()
		if t == nil {
			return ran
		}
		t.done = true
		t.fn()
		ran++
	}
}

func (s *TickScheduler) popDue() *tickTask {
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due == s.tasks[j].due {
			return s.tasks[i].id < s.tasks[j].id
		}
		return s.tasks[i].due < s.tasks[j].due
	})
	if len(s.tasks) == 0 || s.tasks[0].due > s.now {
		return nil
	}
	t := s.tasks[0]
	s.tasks = s.tasks[1:]
	return t
}

// Now returns the total time advanced so far.
func (s *TickScheduler) Now() time.Duration {
	return s.now
}

// Len returns the number of pending tasks.
func (s *TickScheduler) Len() int {
	return len(s.tasks)
}

// Stop cancels every pending task.
func (s *TickScheduler) Stop() {
	for _, t := range s.tasks {
		t.done = true
	}
	s.tasks = s.tasks[:0]
}

func (t *tickTask) Cancel() bool {
	if t.done {
		return false
	}
	t.done = true
	s := t.scheduler
	for i, other := range s.tasks {
		if other == t {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	return true
}

func (t *tickTask) Pending() bool {
	return !t.done
}
