package postmark

// Config holds Postmark credentials and sender identity.
type Config struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail  string `env:"SENDER_EMAIL"`
	SupportEmail string `env:"SUPPORT_EMAIL"`
	// BaseURL overrides the API endpoint. Empty keeps the library default.
	BaseURL string `env:"POSTMARK_BASE_URL"`
}

// Enabled reports whether a server token is configured.
func (c Config) Enabled() bool {
	return c.ServerToken != ""
}
