package alert

import (
	"time"

	"github.com/dmitrymomot/httpkernel/core/logger"
)

// EnvConfig is the environment form of Config. Alerts are disabled while
// ALERT_EMAIL_TO is empty.
type EnvConfig struct {
	To          string        `env:"ALERT_EMAIL_TO"`
	MinSeverity string        `env:"ALERT_MIN_SEVERITY" envDefault:"critical"`
	Cooldown    time.Duration `env:"ALERT_COOLDOWN" envDefault:"5m"`
	Timeout     time.Duration `env:"ALERT_TIMEOUT" envDefault:"10s"`
	// DevDir receives alerts as files when no mail transport is configured.
	DevDir string `env:"ALERT_DEV_DIR" envDefault:"./tmp/alerts"`
	// ArchiveDir stores incident reports locally when no bucket is configured.
	ArchiveDir string `env:"ALERT_ARCHIVE_DIR"`
}

// Enabled reports whether a recipient is configured.
func (c EnvConfig) Enabled() bool {
	return c.To != ""
}

// Severity parses MinSeverity.
func (c EnvConfig) Severity() (logger.Severity, error) {
	return logger.ParseSeverity(c.MinSeverity)
}
