// Package models defines the records and settings racewatch persists.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Null marks a field that is not yet known or does not apply.
const Null = "NULL"

// EntryKind tells whether an entry was recorded on start or on stop.
type EntryKind string

const (
	EntryStart EntryKind = "start"
	EntryStop  EntryKind = "stop"
)

// Entry is one recorded start or stop event. Fields are kept as display
// strings in the fixed column order: time, timezone, latitude, longitude,
// elapsed.
type Entry struct {
	Time      string `yaml:"time"`
	Timezone  string `yaml:"timezone"`
	Latitude  string `yaml:"latitude"`
	Longitude string `yaml:"longitude"`
	Elapsed   string `yaml:"elapsed"`
}

// EntryFieldCount is the number of columns in an entry.
const EntryFieldCount = 5

// NewEntry creates an entry with unresolved coordinates.
func NewEntry(timeLabel, timezone, elapsed string) Entry {
	return Entry{
		Time:      timeLabel,
		Timezone:  timezone,
		Latitude:  Null,
		Longitude: Null,
		Elapsed:   elapsed,
	}
}

// Fields returns the entry values in column order.
func (e Entry) Fields() []string {
	return []string{e.Time, e.Timezone, e.Latitude, e.Longitude, e.Elapsed}
}

// EntryFromFields builds an entry from column-ordered values.
func EntryFromFields(fields []string) (Entry, error) {
	if len(fields) != EntryFieldCount {
		return Entry{}, fmt.Errorf("entry has %d fields, want %d", len(fields), EntryFieldCount)
	}
	return Entry{
		Time:      fields[0],
		Timezone:  fields[1],
		Latitude:  fields[2],
		Longitude: fields[3],
		Elapsed:   fields[4],
	}, nil
}

// HasLocation reports whether both coordinates are resolved.
func (e Entry) HasLocation() bool {
	return e.Latitude != Null && e.Longitude != Null
}

// TimezoneLabel formats the local offset of t as "GMT+{hours}". Hours follow
// the browser offset convention (minutes behind UTC) and are truncated toward
// zero, so UTC-5 renders as "GMT+5" and UTC+2 as "GMT+-2".
func TimezoneLabel(t time.Time) string {
	_, offset := t.Zone()
	minutesBehind := -offset / 60
	return "GMT+" + strconv.Itoa(minutesBehind/60)
}

// FormatCoordinate renders decimal degrees truncated to three fraction digits.
func FormatCoordinate(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 3 {
		frac = frac[:3]
	}
	frac += strings.Repeat("0", 3-len(frac))
	return whole + "." + frac
}
