package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeSource tags how a normalized timestamp was obtained.
type TimeSource int

const (
	// SourceISO means the raw value matched an ISO-like
	// "YYYY-MM-DD ..." layout.
	SourceISO TimeSource = iota
	// SourceLayout means another recognized textual layout matched.
	SourceLayout
	// SourceSerial means the raw value was a spreadsheet serial number.
	SourceSerial
	// SourceFallbackNow means nothing parsed and the wall clock at
	// import time was used instead.
	SourceFallbackNow
)

func (s TimeSource) String() string {
	switch s {
	case SourceISO:
		return "iso"
	case SourceLayout:
		return "layout"
	case SourceSerial:
		return "serial"
	case SourceFallbackNow:
		return "fallback_now"
	default:
		return "unknown"
	}
}

// NormalizedTime carries a timestamp together with its provenance, so
// callers can tell trustworthy values apart from wall-clock fallbacks
// without comparing against "now" themselves.
type NormalizedTime struct {
	Time   time.Time
	Source TimeSource
}

// FellBack reports whether the timestamp is of dubious provenance.
func (n NormalizedTime) FellBack() bool {
	return n.Source == SourceFallbackNow
}

// The 1900 date system puts the Unix epoch 25567 days after its
// nominal origin, off by the convention's well-known two-day
// discrepancy; serial day 0 lands on 1899-12-30.
const (
	serialUnixEpochDays    = 25567
	serialEpochDiscrepancy = 2
	secondsPerDay          = 86400
)

// isoLayouts are tried first: an ISO-like date segment, optionally
// followed by a time of day.
var isoLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// genericLayouts cover the other textual shapes seen in portaria
// exports, mostly Brazilian day-first dates.
var genericLayouts = []string{
	time.RFC3339,
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006 15:04:05",
	"02-01-2006",
}

// NormalizeTimestamp converts a raw cell value into an absolute
// timestamp. Priority: ISO-like layouts, then generic textual layouts,
// then spreadsheet serial numbers. Anything else falls back to the
// current wall-clock time; the fallback is lenient on purpose, the
// event is still created, and the Source tag is the only signal.
func NormalizeTimestamp(raw string) NormalizedTime {
	value := strings.TrimSpace(raw)
	if value == "" {
		return NormalizedTime{Time: time.Now(), Source: SourceFallbackNow}
	}

	for _, layout := range isoLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return NormalizedTime{Time: ts, Source: SourceISO}
		}
	}

	for _, layout := range genericLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return NormalizedTime{Time: ts, Source: SourceLayout}
		}
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if !math.IsNaN(serial) && !math.IsInf(serial, 0) {
			return NormalizedTime{Time: serialToTime(serial), Source: SourceSerial}
		}
	}

	return NormalizedTime{Time: time.Now(), Source: SourceFallbackNow}
}

// serialToTime converts a spreadsheet date serial to a timestamp. The
// day fraction carries the time of day; rounding to whole seconds
// flushes float crumbs.
func serialToTime(serial float64) time.Time {
	seconds := (serial - (serialUnixEpochDays + serialEpochDiscrepancy)) * secondsPerDay
	return time.Unix(int64(math.Round(seconds)), 0)
}
