package ics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "schedtrack/internal/log"
	"schedtrack/internal/model"
	"schedtrack/internal/sched"
)

// Item is one imported VEVENT reduced to create-schedule inputs. Time is
// empty for all-day events.
type Item struct {
	Title string
	Date  string
	Time  string
}

// Export writes the schedule collection as a VCALENDAR. All-day schedules
// become DATE-valued events, timed ones DATE-TIME-valued; schedules whose
// date or datetime does not parse are skipped.
func Export(w io.Writer, schedules []model.Schedule) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//schedtrack//schedtrack//EN")

	for _, s := range schedules {
		var (
			allDayStart time.Time
			timedStart  time.Time
		)
		if s.Time == "" {
			d, err := time.ParseInLocation(sched.DateLayout, s.Date, time.Local)
			if err != nil {
				appLog.Debug("skipping schedule with unparseable date", "id", s.ID, "date", s.Date)
				continue
			}
			allDayStart = d
		} else {
			start, ok := sched.ParseDateTime(s.DateTime)
			if !ok {
				appLog.Debug("skipping schedule with unparseable datetime", "id", s.ID, "datetime", s.DateTime)
				continue
			}
			timedStart = start
		}

		ev := cal.AddEvent(fmt.Sprintf("schedtrack-%d", s.ID))
		ev.SetSummary(s.Title)
		if !s.CreatedAt.IsZero() {
			ev.SetCreatedTime(s.CreatedAt)
		}
		if s.Time == "" {
			ev.SetAllDayStartAt(allDayStart)
		} else {
			ev.SetStartAt(timedStart)
		}
	}

	return cal.SerializeTo(w)
}

// Import parses an ICS payload into create-schedule inputs. Events without a
// usable DTSTART are skipped, not fatal; an empty payload is an error.
func Import(r io.Reader) ([]Item, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	// ParseCalendar yields an empty calendar for a zero-byte payload, so the
	// blank case is rejected up front.
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty ICS payload")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	items := make([]Item, 0)
	for _, ve := range cal.Events() {
		it, err := importVEvent(ve)
		if err != nil {
			appLog.Debug("skipping vevent", "err", err)
			continue
		}
		items = append(items, it)
	}

	appLog.Info("ics import parsed", "event_count", len(items))
	return items, nil
}

func importVEvent(ve *ical.VEvent) (Item, error) {
	var it Item

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		it.Title = p.Value
	}
	if it.Title == "" {
		return it, errors.New("missing SUMMARY")
	}

	// All-day detection mirrors DTSTART semantics: VALUE=DATE, or a value
	// without a time component.
	allDay := false
	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return it, errors.New("missing DTSTART")
	}
	if params := dtStart.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			allDay = true
		}
	}
	if !strings.Contains(dtStart.Value, "T") {
		allDay = true
	}

	if allDay {
		start, err := ve.GetAllDayStartAt()
		if err != nil {
			return it, fmt.Errorf("all-day DTSTART: %w", err)
		}
		it.Date = start.Format(sched.DateLayout)
		return it, nil
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return it, fmt.Errorf("DTSTART: %w", err)
	}
	start = start.In(time.Local)
	it.Date = start.Format(sched.DateLayout)
	it.Time = start.Format("15:04")
	return it, nil
}
