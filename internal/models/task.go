// Package models contains domain types for planner entities.
// Persistence lives in internal/adapters/jsonfile and internal/adapters/sqlite.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the fixed-width date format used on disk and on the command line.
const DateLayout = "2006-01-02"

// Task represents one schedulable unit of work within a project.
// Name is the key used by edit and delete; Start and End are calendar dates.
type Task struct {
	Name     string
	Person   string
	Start    time.Time
	End      time.Time
	Color    Color
	Progress int
	Priority Priority
}

// Duration returns the number of whole days between Start and End.
func (t Task) Duration() int {
	return DaysBetween(t.Start, t.End)
}

// Priority is the enumerated task priority.
type Priority int

// Priority levels. PriorityMid is the default when none is given.
const (
	PriorityLow Priority = iota + 1
	PriorityMid
	PriorityHigh
)

// String returns the on-disk label of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMid:
		return "Mid"
	case PriorityHigh:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Valid reports whether p is one of the defined levels.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// ParsePriority parses a priority label. "Medium" is accepted as Mid
// and an empty string yields the default.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityMid, nil
	case "low":
		return PriorityLow, nil
	case "mid", "medium":
		return PriorityMid, nil
	case "high":
		return PriorityHigh, nil
	}
	return 0, fmt.Errorf("invalid priority %q (expected Low, Mid or High)", s)
}

// Color is an RGB color with 8-bit channels.
type Color struct {
	R, G, B uint8
}

// DefaultColor is used when a record carries no color.
var DefaultColor = Color{R: 0xFF, G: 0xFF, B: 0xFF}

// Hex returns the color as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// Blend mixes c toward other by ratio (0 keeps c, 1 yields other).
func (c Color) Blend(other Color, ratio float64) Color {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*ratio + 0.5)
	}
	return Color{R: mix(c.R, other.R), G: mix(c.G, other.G), B: mix(c.B, other.B)}
}

// ParseColor parses #RRGGBB, RRGGBB or the short #RGB form.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid color %q (expected #RRGGBB)", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q (expected #RRGGBB)", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// ParseDate parses a YYYY-MM-DD date as a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return d, nil
}

// FormatDate formats a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOf truncates t to its calendar date, expressed at UTC midnight.
// The wall-clock date of t in its own location is kept.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the number of calendar days from a to b.
// It is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int((DateOf(b).Unix() - DateOf(a).Unix()) / secondsPerDay)
}
