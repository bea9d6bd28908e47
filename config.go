package recetario

// SiteConfig holds all configuration for a recetario site.
type SiteConfig struct {
	Name        string // Site name (default "Recetario")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/recetas.db")

	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	PageSize int // Recipes per listing page (default 10)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Recetario"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/recetas.db"
	}
	if c.PageSize == 0 {
		c.PageSize = 10
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithSeed runs the baseline seeding routine on startup, after the
// schema is in place.
func WithSeed() Option {
	return func(a *App) {
		a.seedOnStart = true
	}
}
