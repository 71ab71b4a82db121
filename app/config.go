package app

import (
	"github.com/dmitrymomot/httpkernel/core/alert"
	"github.com/dmitrymomot/httpkernel/core/exception"
	"github.com/dmitrymomot/httpkernel/core/server"
	"github.com/dmitrymomot/httpkernel/integration/database/pg"
	"github.com/dmitrymomot/httpkernel/integration/database/redis"
	"github.com/dmitrymomot/httpkernel/integration/email/postmark"
	"github.com/dmitrymomot/httpkernel/integration/storage/s3"
)

// Config is the application configuration, loaded from the environment.
type Config struct {
	Server    server.Config
	Exception exception.EnvConfig
	Postgres  pg.Config
	Redis     redis.Config
	Alert     alert.EnvConfig
	Postmark  postmark.Config
	S3        s3.Config

	AppName   string `env:"APP_NAME" envDefault:"httpkernel"`
	Env       string `env:"APP_ENV" envDefault:"development"`
	Debug     bool   `env:"APP_DEBUG" envDefault:"false"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	Security  string `env:"SECURITY_HEADERS" envDefault:"balanced"`
	// DisableErrorPages keeps exception logging but skips the fallback
	// error page, so failed requests get a bare status text.
	DisableErrorPages bool `env:"APP_DISABLE_ERROR_PAGES" envDefault:"false"`
}
