package exception

import "log/slog"

// EnvConfig is the environment form of Config.
//
//	EXCEPTION_CONTROLLER=error.show
//	EXCEPTION_LOG_POLICY=client_warning
//	EXCEPTION_LOG_LEVELS=404:notice,503:alert
type EnvConfig struct {
	Controller string            `env:"EXCEPTION_CONTROLLER" envDefault:"error.show"`
	LogPolicy  string            `env:"EXCEPTION_LOG_POLICY" envDefault:"client_warning"`
	LogLevels  map[string]string `env:"EXCEPTION_LOG_LEVELS"`
}

// Config converts c into a listener Config using log as the logger.
func (c EnvConfig) Config(log *slog.Logger) (Config, error) {
	policy, err := ParsePolicy(c.LogPolicy)
	if err != nil {
		return Config{}, err
	}
	levels, err := ParseLevelTable(c.LogLevels)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Controller: c.Controller,
		Logger:     log,
		Levels:     levels,
		Policy:     policy,
	}, nil
}
