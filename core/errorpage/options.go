package errorpage

// Option configures a Page.
type Option func(*Page)

// WithDebug toggles detailed error output.
func WithDebug(debug bool) Option {
	return func(p *Page) {
		p.debug = debug
	}
}

// WithTitle sets the application name shown in the page title.
func WithTitle(title string) Option {
	return func(p *Page) {
		if title != "" {
			p.title = title
		}
	}
}
