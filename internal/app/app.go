package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"schedtrack/internal/config"
	"schedtrack/internal/ics"
	appLog "schedtrack/internal/log"
	"schedtrack/internal/model"
	"schedtrack/internal/notify"
	"schedtrack/internal/sched"
	"schedtrack/internal/store"
)

var (
	ErrInvalidSchedule = errors.New("schedule needs a title and a date")
	ErrPastDate        = errors.New("schedule date is in the past")
	ErrNotFound        = errors.New("schedule not found")
)

// App owns the live application state: the in-memory schedule collection,
// the filter and search selections, the selected calendar date and the
// visible month. The core computations stay pure; App hands them snapshots
// and persists the results. All mutation happens on the caller's control
// flow; the internal mutex only shields the state from the rollover watcher.
type App struct {
	cfg     *config.Config
	store   *store.Store
	factory *sched.Factory
	armer   *notify.Armer
	now     func() time.Time

	mu           sync.Mutex
	schedules    []model.Schedule
	filter       model.Filter
	search       string
	selectedDate string
	year         int
	month        int // zero-based, normalized into 0..11 by navigation

	dayKey string
	cron   *cron.Cron
}

// New builds an App around the given collaborators; a nil clock means
// time.Now.
func New(cfg *config.Config, st *store.Store, armer *notify.Armer, now func() time.Time) *App {
	if now == nil {
		now = time.Now
	}
	n := now()
	a := &App{
		cfg:     cfg,
		store:   st,
		factory: sched.NewFactory(now),
		armer:   armer,
		now:     now,
		filter:  model.FilterAll,
		year:    n.Year(),
		month:   int(n.Month()) - 1,
		dayKey:  sched.DateKey(n),
	}
	return a
}

// Load restores persisted schedules and view settings, then arms reminders.
func (a *App) Load(ctx context.Context) error {
	now := a.now()
	schedules, err := a.store.LoadSchedules(ctx, now)
	if err != nil {
		return err
	}
	filterStr, err := a.store.Setting(ctx, store.KeyFilter, string(model.FilterAll))
	if err != nil {
		return err
	}
	search, err := a.store.Setting(ctx, store.KeySearch, "")
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.schedules = schedules
	a.filter = model.ParseFilter(filterStr)
	a.search = search
	a.mu.Unlock()

	a.rearm()
	appLog.Info("state loaded", "schedules", len(schedules), "filter", filterStr)
	return nil
}

// Create validates and adds a new schedule. A nil notifyBefore means no
// reminder. Any mutation returns the day view to today.
func (a *App) Create(ctx context.Context, title, date, tod string, notifyBefore *int) (model.Schedule, error) {
	title = strings.TrimSpace(title)
	if !sched.IsValid(title, date) {
		return model.Schedule{}, ErrInvalidSchedule
	}
	if sched.IsPastDate(date, a.now()) {
		return model.Schedule{}, ErrPastDate
	}

	s := a.factory.New(title, date, tod)
	s.NotifyBefore = notifyBefore

	a.mu.Lock()
	if err := a.store.SaveSchedule(ctx, s); err != nil {
		a.mu.Unlock()
		return model.Schedule{}, err
	}
	a.schedules = append(a.schedules, s)
	a.selectedDate = ""
	a.mu.Unlock()

	a.rearm()
	appLog.Debug("schedule created", "id", s.ID, "datetime", s.DateTime)
	return s, nil
}

// Update edits title, date, time and reminder offset of an existing
// schedule, recomputing the derived datetime. Identity, completion state and
// createdAt are untouched.
func (a *App) Update(ctx context.Context, id int64, title, date, tod string, notifyBefore *int) (model.Schedule, error) {
	title = strings.TrimSpace(title)
	if !sched.IsValid(title, date) {
		return model.Schedule{}, ErrInvalidSchedule
	}
	if sched.IsPastDate(date, a.now()) {
		return model.Schedule{}, ErrPastDate
	}

	t := sched.NormalizeTime(tod)

	a.mu.Lock()
	i := a.indexOf(id)
	if i < 0 {
		a.mu.Unlock()
		return model.Schedule{}, ErrNotFound
	}
	updated := a.schedules[i]
	updated.Title = title
	updated.Date = date
	updated.Time = t
	updated.DateTime = sched.BuildDateTime(date, t)
	updated.NotifyBefore = notifyBefore

	if err := a.store.SaveSchedule(ctx, updated); err != nil {
		a.mu.Unlock()
		return model.Schedule{}, err
	}
	a.schedules[i] = updated
	a.selectedDate = ""
	a.mu.Unlock()

	a.rearm()
	appLog.Debug("schedule updated", "id", id, "datetime", updated.DateTime)
	return updated, nil
}

// ToggleComplete flips the completion state of one schedule.
func (a *App) ToggleComplete(ctx context.Context, id int64) (model.Schedule, error) {
	a.mu.Lock()
	i := a.indexOf(id)
	if i < 0 {
		a.mu.Unlock()
		return model.Schedule{}, ErrNotFound
	}
	updated := a.schedules[i]
	updated.Completed = !updated.Completed

	if err := a.store.SaveSchedule(ctx, updated); err != nil {
		a.mu.Unlock()
		return model.Schedule{}, err
	}
	a.schedules[i] = updated
	a.mu.Unlock()

	a.rearm()
	return updated, nil
}

// Delete removes one schedule.
func (a *App) Delete(ctx context.Context, id int64) error {
	a.mu.Lock()
	i := a.indexOf(id)
	if i < 0 {
		a.mu.Unlock()
		return ErrNotFound
	}
	if err := a.store.DeleteSchedule(ctx, id); err != nil {
		a.mu.Unlock()
		return err
	}
	a.schedules = append(a.schedules[:i], a.schedules[i+1:]...)
	a.mu.Unlock()

	a.rearm()
	appLog.Debug("schedule deleted", "id", id)
	return nil
}

// indexOf must run with the lock held.
func (a *App) indexOf(id int64) int {
	for i, s := range a.schedules {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// SetFilter selects and persists the list-view filter.
func (a *App) SetFilter(ctx context.Context, f model.Filter) error {
	f = model.ParseFilter(string(f))
	a.mu.Lock()
	a.filter = f
	a.mu.Unlock()
	return a.store.SetSetting(ctx, store.KeyFilter, string(f))
}

// SetSearch sets and persists the list-view search query.
func (a *App) SetSearch(ctx context.Context, query string) error {
	a.mu.Lock()
	a.search = query
	a.mu.Unlock()
	return a.store.SetSetting(ctx, store.KeySearch, query)
}

// Select picks a calendar date for the day view. Selecting today clears the
// selection, returning the day view to its default.
func (a *App) Select(date string) {
	a.mu.Lock()
	if sched.IsToday(date, a.now()) {
		a.selectedDate = ""
	} else {
		a.selectedDate = date
	}
	a.mu.Unlock()
}

// DayView returns the target date (the selection, or today) and its sorted
// schedules.
func (a *App) DayView() (string, []model.Schedule) {
	a.mu.Lock()
	defer a.mu.Unlock()
	target := a.selectedDate
	if target == "" {
		target = sched.DateKey(a.now())
	}
	return target, sched.ForDay(sched.Sort(a.schedules), target)
}

// ListView returns the sorted schedules narrowed by the current filter and
// search query.
func (a *App) ListView() []model.Schedule {
	a.mu.Lock()
	defer a.mu.Unlock()
	return sched.ApplyFilter(sched.Sort(a.schedules), a.filter, a.search)
}

// Calendar returns the visible year, zero-based month, the month grid and
// the per-day schedule counts.
func (a *App) Calendar() (int, int, []model.CalendarCell, map[string]int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.year, a.month, sched.MonthCalendar(a.year, a.month), sched.CountByDate(a.schedules)
}

// PrevMonth moves the visible month back, wrapping across the year boundary.
func (a *App) PrevMonth() {
	a.mu.Lock()
	a.month--
	if a.month < 0 {
		a.month = 11
		a.year--
	}
	a.mu.Unlock()
}

// NextMonth moves the visible month forward, wrapping across the year
// boundary.
func (a *App) NextMonth() {
	a.mu.Lock()
	a.month++
	if a.month > 11 {
		a.month = 0
		a.year++
	}
	a.mu.Unlock()
}

// JumpTo moves the visible month directly; month is 1-based as typed.
func (a *App) JumpTo(year, month int) error {
	if year <= 0 || month < 1 || month > 12 {
		return fmt.Errorf("invalid year-month %d-%02d", year, month)
	}
	a.mu.Lock()
	a.year = year
	a.month = month - 1
	a.mu.Unlock()
	return nil
}

// ExportICS writes the sorted collection as an ICS payload.
func (a *App) ExportICS(w io.Writer) error {
	a.mu.Lock()
	snap := sched.Sort(a.schedules)
	a.mu.Unlock()
	return ics.Export(w, snap)
}

// ImportICS creates one schedule per imported event, skipping invalid and
// past entries. Timed imports inherit the configured default reminder
// offset.
func (a *App) ImportICS(ctx context.Context, r io.Reader) (int, error) {
	items, err := ics.Import(r)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, it := range items {
		var nb *int
		if it.Time != "" && a.cfg.DefaultNotifyMinutes > 0 {
			m := a.cfg.DefaultNotifyMinutes
			nb = &m
		}
		if _, err := a.Create(ctx, it.Title, it.Date, it.Time, nb); err != nil {
			appLog.Debug("skipping imported event", "title", it.Title, "reason", err)
			continue
		}
		added++
	}
	return added, nil
}

// StartRollover begins the periodic day-change poll on the configured cron
// spec (seconds granularity). onChange, if non-nil, runs after the tracked
// day advances, so the caller can redraw. Stop halts the watcher.
func (a *App) StartRollover(onChange func()) error {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(a.cfg.RolloverCheck, func() { a.checkRollover(onChange) }); err != nil {
		return fmt.Errorf("rollover cron %q: %w", a.cfg.RolloverCheck, err)
	}
	a.cron = c
	c.Start()
	appLog.Info("rollover watcher started", "spec", a.cfg.RolloverCheck)
	return nil
}

func (a *App) checkRollover(onChange func()) {
	key := sched.DateKey(a.now())

	a.mu.Lock()
	if key == a.dayKey {
		a.mu.Unlock()
		return
	}
	a.dayKey = key
	// A selection pointing at a day that is now past snaps back to today.
	if a.selectedDate != "" && a.selectedDate < key {
		a.selectedDate = ""
	}
	a.mu.Unlock()

	appLog.Info("day rollover", "today", key)
	a.rearm()
	if onChange != nil {
		onChange()
	}
}

// Stop halts the rollover watcher and cancels pending reminder timers.
func (a *App) Stop() {
	if a.cron != nil {
		<-a.cron.Stop().Done()
		a.cron = nil
	}
	a.armer.Stop()
}

func (a *App) rearm() {
	a.mu.Lock()
	snap := make([]model.Schedule, len(a.schedules))
	copy(snap, a.schedules)
	a.mu.Unlock()

	armed := a.armer.Rearm(snap)
	appLog.Debug("reminders rearmed", "armed", armed)
}
