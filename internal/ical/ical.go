// Package ical writes drafted events as an iCalendar (RFC 5545) stream.
package ical

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"calentry/internal/model"

	goical "github.com/emersion/go-ical"
)

const productID = "-//calentry//calentry//EN"

// floatingFormat is a DATE-TIME without zone: local wall-clock time.
const floatingFormat = "20060102T150405"

type Options struct {
	// Location pins timed events to UTC instants computed in Location.
	// Nil writes floating local times.
	Location *time.Location
	// Now stamps DTSTAMP; zero means time.Now().
	Now time.Time
	// Duration of timed events; zero means one hour.
	Duration time.Duration
}

// Calendar builds a VCALENDAR with one VEVENT per event.
func Calendar(events []model.Event, opts Options) (*goical.Calendar, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	dur := opts.Duration
	if dur <= 0 {
		dur = time.Hour
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	cal := goical.NewCalendar()
	cal.Props.SetText(goical.PropVersion, "2.0")
	cal.Props.SetText(goical.PropProductID, productID)

	for _, ev := range events {
		start, err := ev.Start.In(loc)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", ev.ID, err)
		}

		vevent := goical.NewComponent(goical.CompEvent)
		vevent.Props.SetText(goical.PropUID, ev.ID+"@calentry")
		vevent.Props.SetDateTime(goical.PropDateTimeStamp, now.UTC())
		vevent.Props.SetText(goical.PropSummary, ev.Summary)
		if ev.Notes != "" {
			vevent.Props.SetText(goical.PropDescription, ev.Notes)
		}

		if ev.Start.AllDay() {
			dtstart := goical.NewProp(goical.PropDateTimeStart)
			dtstart.SetDate(start)
			vevent.Props.Set(dtstart)
			dtend := goical.NewProp(goical.PropDateTimeEnd)
			dtend.SetDate(start.AddDate(0, 0, 1))
			vevent.Props.Set(dtend)
		} else {
			vevent.Props.Set(dateTimeProp(goical.PropDateTimeStart, start, opts.Location == nil))
			vevent.Props.Set(dateTimeProp(goical.PropDateTimeEnd, start.Add(dur), opts.Location == nil))
		}
		cal.Children = append(cal.Children, vevent)
	}
	return cal, nil
}

func dateTimeProp(name string, t time.Time, floating bool) *goical.Prop {
	p := goical.NewProp(name)
	if floating {
		p.Value = t.Format(floatingFormat)
		return p
	}
	p.SetDateTime(t.UTC())
	return p
}

// Encode writes events to w.
func Encode(w io.Writer, events []model.Event, opts Options) error {
	cal, err := Calendar(events, opts)
	if err != nil {
		return err
	}
	if err := goical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode iCalendar: %w", err)
	}
	slog.Debug("events exported", "count", len(events))
	return nil
}
