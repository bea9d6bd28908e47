// Package recetario is a recipe publishing engine built with Go, Echo, and
// templ. It provides registration and session login, recipe CRUD with tags,
// comments, like/dislike voting, feeds, and seeding out of the box.
//
// Users provide their own templ components via the ViewFuncs struct,
// and recetario handles all the handler logic, middleware, and database
// operations.
package recetario

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	_ "modernc.org/sqlite"
)

// ViewFuncs holds user-provided templ components that the engine calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Landing     func(latest []Recipe, user *User) templ.Component
	Recipes     func(recipes []Recipe, tags []Tag, query, activeTag string, user *User) templ.Component
	Recipe      func(d RecipeDetail, user *User, csrfToken string) templ.Component
	RecipeForm  func(tags []Tag, msg string, csrfToken string) templ.Component
	Register    func(msg string, csrfToken string) templ.Component
	Login       func(msg string, csrfToken string) templ.Component
	Profile     func(user User, recipes []Recipe) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the central recetario application. It wires together the store,
// handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Views  ViewFuncs

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	seedOnStart  bool
}

// New creates a new recetario App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, middleware, routes, and starts the server.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("recetario: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("recetario: init store: %w", err)
	}
	a.Store = store

	if a.seedOnStart {
		if err := a.Store.Seed(); err != nil {
			return fmt.Errorf("recetario: seed: %w", err)
		}
	}

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Serve the embedded vote widget under /public/, falling through to the
	// user's static dir for everything else.
	embeddedHandler := http.FileServer(http.FS(embeddedAssetsFS))
	e.GET("/public/votar.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleLanding)
	e.GET("/recetas", a.handleRecipes)
	e.GET("/receta/:id", a.handleRecipe)

	// Account routes
	e.GET("/crear-cuenta", a.handleRegisterForm)
	e.POST("/crear-cuenta", a.handleRegister)
	e.GET("/iniciar-sesion", a.handleLoginForm)
	e.POST("/iniciar-sesion", a.handleLogin)
	e.GET("/cerrar-sesion", handleLogout)
	e.GET("/perfil", a.handleProfile)

	// Authenticated content routes
	e.GET("/crear-receta", a.handleRecipeForm)
	e.POST("/crear-receta", a.handleRecipeCreate)
	e.POST("/receta/:id/comentar", a.handleComment)
	e.POST("/receta/imagen", a.handleImageUpload)

	// Vote API (JSON)
	e.POST("/api/receta/:id/votar", a.handleVote)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("recetario: required environment variable %s is not set", key)
	}
	return v
}
