package exception_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkernel/core/exception"
	"github.com/dmitrymomot/httpkernel/core/logger"
)

func TestEnvConfig(t *testing.T) {
	t.Parallel()

	log := logger.Discard()
	cfg, err := exception.EnvConfig{
		Controller: "error.show",
		LogPolicy:  "below_server_error",
		LogLevels:  map[string]string{"404": "notice"},
	}.Config(log)
	require.NoError(t, err)

	assert.Equal(t, "error.show", cfg.Controller)
	assert.Same(t, log, cfg.Logger)
	assert.Equal(t, exception.PolicyBelowServerError, cfg.Policy)
	assert.Equal(t, exception.LevelTable{404: logger.SeverityNotice}, cfg.Levels)

	_, err = exception.EnvConfig{LogPolicy: "loud"}.Config(log)
	assert.ErrorIs(t, err, exception.ErrUnknownPolicy)

	_, err = exception.EnvConfig{LogLevels: map[string]string{"x": "y"}}.Config(log)
	assert.ErrorIs(t, err, exception.ErrInvalidLevelTable)
}
