package notify

import (
	"sync"
	"time"

	appLog "schedtrack/internal/log"
	"schedtrack/internal/model"
	"schedtrack/internal/sched"
)

// Permission is the three-state notification permission model: a dispatch
// only goes out once the user has granted it.
type Permission int

const (
	PermissionNotAsked Permission = iota
	PermissionGranted
	PermissionDenied
)

// Dispatcher delivers a user-visible alert for a schedule.
type Dispatcher interface {
	Dispatch(s model.Schedule)
}

// LogDispatcher writes alerts to the application log. It stands in wherever
// no platform notification surface is wired up.
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(s model.Schedule) {
	appLog.Info("schedule reminder", "id", s.ID, "title", s.Title, "datetime", s.DateTime)
}

// Armer owns the pending reminder timers, at most one per schedule id.
// Rearming is wholesale: every pending timer is cancelled before the new set
// is armed, so a recomputed collection never double-fires.
type Armer struct {
	mu         sync.Mutex
	timers     map[int64]*time.Timer
	dispatch   Dispatcher
	permission Permission
	now        func() time.Time
}

// NewArmer returns an Armer using the given dispatcher and clock; a nil
// clock means time.Now.
func NewArmer(d Dispatcher, now func() time.Time) *Armer {
	if now == nil {
		now = time.Now
	}
	return &Armer{
		timers:   make(map[int64]*time.Timer),
		dispatch: d,
		now:      now,
	}
}

// SetPermission records the user's notification permission state.
func (a *Armer) SetPermission(p Permission) {
	a.mu.Lock()
	a.permission = p
	a.mu.Unlock()
}

// Rearm cancels every pending timer, then arms one timer per schedule whose
// notify instant lies strictly in the future. It returns the number armed.
func (a *Armer) Rearm(schedules []model.Schedule) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.clearLocked()

	now := a.now()
	armed := 0
	for _, s := range schedules {
		if s.NotifyBefore == nil {
			continue
		}
		at := sched.NotifyTime(s.DateTime, s.NotifyBefore)
		if at == nil {
			continue
		}
		delay := at.Sub(now)
		if delay <= 0 {
			continue
		}
		s := s
		a.timers[s.ID] = time.AfterFunc(delay, func() { a.fire(s) })
		armed++
	}
	return armed
}

// Pending reports how many timers are currently armed.
func (a *Armer) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.timers)
}

// Stop cancels every pending timer.
func (a *Armer) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.clearLocked()
}

func (a *Armer) clearLocked() {
	for id, t := range a.timers {
		t.Stop()
		delete(a.timers, id)
	}
}

func (a *Armer) fire(s model.Schedule) {
	a.mu.Lock()
	delete(a.timers, s.ID)
	perm := a.permission
	a.mu.Unlock()

	if perm != PermissionGranted {
		appLog.Debug("reminder suppressed, notifications not granted", "id", s.ID)
		return
	}
	a.dispatch.Dispatch(s)
}
