package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// Severity is a log level from the standard ordered severity scale
// (debug < info < notice < warning < error < critical < alert < emergency).
type Severity int

const (
	SeverityDebug Severity = iota + 1
	SeverityInfo
	SeverityNotice
	SeverityWarning
	SeverityError
	SeverityCritical
	SeverityAlert
	SeverityEmergency
)

// Extended slog levels. Debug, Info, Warn and Error keep their slog values.
const (
	LevelNotice    = slog.Level(2)
	LevelCritical  = slog.Level(12)
	LevelAlert     = slog.Level(16)
	LevelEmergency = slog.Level(20)
)

var severityNames = map[Severity]string{
	SeverityDebug:     "debug",
	SeverityInfo:      "info",
	SeverityNotice:    "notice",
	SeverityWarning:   "warning",
	SeverityError:     "error",
	SeverityCritical:  "critical",
	SeverityAlert:     "alert",
	SeverityEmergency: "emergency",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Level returns the slog level used to emit records of this severity.
// Unknown severities are logged as errors.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityDebug:
		return slog.LevelDebug
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityNotice:
		return LevelNotice
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityCritical:
		return LevelCritical
	case SeverityAlert:
		return LevelAlert
	case SeverityEmergency:
		return LevelEmergency
	default:
		return slog.LevelError
	}
}

// ParseSeverity parses a severity name. Matching is case-insensitive and
// accepts "warn" and "err" as aliases.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return SeverityDebug, nil
	case "info":
		return SeverityInfo, nil
	case "notice":
		return SeverityNotice, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error", "err":
		return SeverityError, nil
	case "critical":
		return SeverityCritical, nil
	case "alert":
		return SeverityAlert, nil
	case "emergency":
		return SeverityEmergency, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSeverity, s)
}

// LevelName returns the display name of a slog level, including the extended ones.
func LevelName(l slog.Level) string {
	switch l {
	case LevelNotice:
		return "NOTICE"
	case LevelCritical:
		return "CRITICAL"
	case LevelAlert:
		return "ALERT"
	case LevelEmergency:
		return "EMERGENCY"
	}
	return l.String()
}

// ReplaceLevel is a slog ReplaceAttr hook that renders extended level names.
func ReplaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(LevelName(l))
		}
	}
	return a
}
