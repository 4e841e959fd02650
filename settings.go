package fintrack

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/etnz/fintrack/date"
	"github.com/google/uuid"
)

// Environment variables read by SettingsFromEnv.
const (
	EnvDecimalPoint = "DECIMAL_POINT"
	EnvDateOrder    = "DATE_ORDER"
	EnvTimezone     = "FINTRACK_TZ"
	// EnvTestingNow pins the clock, it is meant for tests and demos only.
	EnvTestingNow = "FINTRACK_TESTING_NOW"
)

// Settings holds the process-wide locale used to read amounts and dates.
type Settings struct {
	DecimalPoint string
	DateOrder    date.Order
	Location     *time.Location
}

// DefaultSettings reads amounts like "1.234,56" and dates day first.
var DefaultSettings = Settings{DecimalPoint: ",", DateOrder: date.DMY, Location: time.Local}

var (
	settingsMu sync.RWMutex
	settings   = DefaultSettings
)

// Configure replaces the process-wide settings. It is meant to be called once
// at start up.
func Configure(s Settings) {
	if s.DecimalPoint == "" {
		s.DecimalPoint = DefaultSettings.DecimalPoint
	}
	if s.Location == nil {
		s.Location = time.Local
	}
	settingsMu.Lock()
	settings = s
	settingsMu.Unlock()
}

// CurrentSettings returns the process-wide settings.
func CurrentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// SettingsFromEnv builds Settings from the environment, getenv is typically
// os.Getenv.
func SettingsFromEnv(getenv func(string) string) (Settings, error) {
	s := DefaultSettings
	if v := getenv(EnvDecimalPoint); v != "" {
		s.DecimalPoint = v
	}
	order, err := date.ParseOrder(getenv(EnvDateOrder))
	if err != nil {
		return s, fmt.Errorf("%s: %w", EnvDateOrder, err)
	}
	s.DateOrder = order
	if v := strings.TrimSpace(getenv(EnvTimezone)); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return s, fmt.Errorf("%s: %w", EnvTimezone, err)
		}
		s.Location = loc
	}
	return s, nil
}

// Parser returns a date parser following s, with the package clock.
func (s Settings) Parser() date.Parser {
	return date.Parser{Order: s.DateOrder, Location: s.Location, Now: now}
}

// now is the clock used for default timestamps, plan keys and expansion
// starts. Tests replace it.
var now = func() time.Time {
	if v := os.Getenv(EnvTestingNow); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
		if t, err := time.ParseInLocation(time.DateOnly, v, CurrentSettings().Location); err == nil {
			return t
		}
	}
	return time.Now()
}

// newUID generates record identifiers.
var newUID = uuid.NewString

// Now returns the current time, or the time pinned by FINTRACK_TESTING_NOW.
func Now() time.Time { return now() }
