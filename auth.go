package recetario

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

func (a *App) handleRegisterForm(c echo.Context) error {
	if CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/perfil")
	}
	return Render(c, a.Views.Register(c.QueryParam("msg"), CsrfToken(c)))
}

func (a *App) handleRegister(c echo.Context) error {
	nombre := strings.TrimSpace(c.FormValue("nombre"))
	apellido := strings.TrimSpace(c.FormValue("apellido"))
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	confirm := c.FormValue("confirm_password")

	if nombre == "" || apellido == "" || email == "" || password == "" || confirm == "" {
		return redirectRegister(c, "Todos los campos son obligatorios")
	}
	if password != confirm {
		return redirectRegister(c, "Las contraseñas no coinciden")
	}

	if _, err := a.Store.Register(nombre, apellido, email, password); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return redirectRegister(c, "El correo electrónico ya está registrado")
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/iniciar-sesion?msg="+url.QueryEscape("Registro exitoso, inicia sesión"))
}

func (a *App) handleLoginForm(c echo.Context) error {
	if CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/perfil")
	}
	return Render(c, a.Views.Login(c.QueryParam("msg"), CsrfToken(c)))
}

func (a *App) handleLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Demasiados intentos. Probá de nuevo en un minuto.")
	}

	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	user, err := a.Store.Authenticate(email, password)
	if errors.Is(err, ErrNotFound) {
		a.loginLimiter.Record(c.RealIP())
		return Render(c, a.Views.Login("Correo o contraseña incorrectos", CsrfToken(c)))
	}
	if err != nil {
		return err
	}
	if err := setUserSession(c, user); err != nil {
		return err
	}
	if next := c.QueryParam("next"); strings.HasPrefix(next, "/") {
		return c.Redirect(http.StatusSeeOther, next)
	}
	return c.Redirect(http.StatusSeeOther, "/perfil")
}

func handleLogout(c echo.Context) error {
	if err := clearUserSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleProfile(c echo.Context) error {
	sessUser := CurrentUser(c)
	if sessUser == nil {
		return redirectToLogin(c)
	}
	// Session restoration: re-read the full record so the page shows
	// fresh data even if the cookie predates a profile change.
	user, err := a.Store.UserByID(sessUser.ID)
	if errors.Is(err, ErrNotFound) {
		_ = clearUserSession(c)
		return redirectToLogin(c)
	}
	if err != nil {
		return err
	}
	recipes, err := a.Store.RecipesByUser(user.ID)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Profile(user, recipes))
}

func redirectRegister(c echo.Context, msg string) error {
	return c.Redirect(http.StatusSeeOther, "/crear-cuenta?msg="+url.QueryEscape(msg))
}
