package scheduler

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"reclip/internal/logging"
)

// windowSlack is how far either side of a window's minute still counts
// as within the window.
const windowSlack = 5 * time.Minute

// Window is a daily wall-clock trigger time.
type Window struct {
	Hour   int
	Minute int
}

func (w Window) String() string {
	return fmt.Sprintf("%02d:%02d", w.Hour, w.Minute)
}

func (w Window) minuteOfDay() int {
	return w.Hour*60 + w.Minute
}

// Windows is a sorted set of daily trigger times.
type Windows []Window

// DefaultWindows returns the fallback schedule used when parsing
// fails.
func DefaultWindows() Windows {
	return Windows{{Hour: 10, Minute: 0}, {Hour: 18, Minute: 0}}
}

// ParseWindows parses a comma-separated "HH:MM,HH:MM" listing. Any
// invalid entry abandons the whole listing for the defaults, with a
// warning, so a typo degrades predictably instead of silently dropping
// one window.
func ParseWindows(raw string, logger *slog.Logger) Windows {
	if logger == nil {
		logger = logging.NewNop()
	}
	var windows Windows
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		window, err := parseWindow(entry)
		if err != nil {
			logger.Warn("invalid upload time, using defaults",
				logging.String("entry", entry),
				logging.Error(err))
			return DefaultWindows()
		}
		windows = append(windows, window)
	}
	if len(windows) == 0 {
		logger.Warn("no upload times configured, using defaults")
		return DefaultWindows()
	}
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].minuteOfDay() < windows[j].minuteOfDay()
	})
	return windows
}

func parseWindow(entry string) (Window, error) {
	parts := strings.Split(entry, ":")
	if len(parts) != 2 {
		return Window{}, fmt.Errorf("want HH:MM, got %q", entry)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Window{}, fmt.Errorf("bad hour in %q", entry)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Window{}, fmt.Errorf("bad minute in %q", entry)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Window{}, fmt.Errorf("out of range: %q", entry)
	}
	return Window{Hour: hour, Minute: minute}, nil
}

// Within reports whether now falls inside any window. Strict mode
// requires the exact minute; otherwise a few minutes of slack on
// either side still triggers, so a slow previous pass cannot make the
// daemon miss its slot.
func (ws Windows) Within(now time.Time, strict bool) bool {
	current := now.Hour()*60 + now.Minute()
	for _, window := range ws {
		if strict {
			if current == window.minuteOfDay() {
				return true
			}
			continue
		}
		diff := current - window.minuteOfDay()
		if diff < 0 {
			diff = -diff
		}
		if time.Duration(diff)*time.Minute <= windowSlack {
			return true
		}
	}
	return false
}

// Next returns the soonest upcoming trigger after now.
func (ws Windows) Next(now time.Time) time.Time {
	if len(ws) == 0 {
		return now.Add(24 * time.Hour)
	}
	for _, window := range ws {
		candidate := time.Date(now.Year(), now.Month(), now.Day(), window.Hour, window.Minute, 0, 0, now.Location())
		if candidate.After(now) {
			return candidate
		}
	}
	first := ws[0]
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), first.Hour, first.Minute, 0, 0, now.Location())
}

// MinGap returns the smallest cyclic gap between consecutive windows.
// It sizes the post-pass back-off so one pass cannot bleed into the
// next window.
func (ws Windows) MinGap() time.Duration {
	if len(ws) < 2 {
		return 24 * time.Hour
	}
	min := 24 * 60
	for i := range ws {
		next := ws[(i+1)%len(ws)]
		gap := next.minuteOfDay() - ws[i].minuteOfDay()
		if gap <= 0 {
			gap += 24 * 60
		}
		if gap < min {
			min = gap
		}
	}
	return time.Duration(min) * time.Minute
}
