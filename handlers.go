package recetario

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const relatedLimit = 3

func (a *App) handleLanding(c echo.Context) error {
	latest, err := a.Store.LatestRecipes(6)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Landing(latest, CurrentUser(c)))
}

func (a *App) handleRecipes(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("buscar"))
	etiqueta := strings.TrimSpace(c.QueryParam("etiqueta"))
	offset := 0
	if page, err := strconv.Atoi(c.QueryParam("pagina")); err == nil && page > 1 {
		offset = (page - 1) * a.Config.PageSize
	}

	recipes, err := a.Store.SearchRecipes(query, etiqueta, a.Config.PageSize, offset)
	if err != nil {
		return err
	}
	tags, err := a.Store.ListTags()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Recipes(recipes, tags, query, etiqueta, CurrentUser(c)))
}

func (a *App) handleRecipe(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/recetas")
	}
	recipe, err := a.Store.RecipeByID(id)
	if errors.Is(err, ErrNotFound) {
		// Missing recipes bounce back to the listing rather than 404,
		// matching how the rest of the site surfaces stale links.
		return c.Redirect(http.StatusSeeOther, "/recetas?msg="+url.QueryEscape("Receta no encontrada"))
	}
	if err != nil {
		return err
	}

	comments, err := a.Store.CommentsForRecipe(id)
	if err != nil {
		return err
	}
	tally, err := a.Store.Tally(id)
	if err != nil {
		return err
	}
	user := CurrentUser(c)
	myVote := 0
	if user != nil {
		if myVote, err = a.Store.CurrentVote(id, user.ID); err != nil {
			return err
		}
	}
	related, err := a.Store.RelatedRecipes(id, relatedLimit)
	if err != nil {
		return err
	}

	return Render(c, a.Views.Recipe(RecipeDetail{
		Recipe:   recipe,
		Comments: comments,
		Tally:    tally,
		MyVote:   myVote,
		Related:  related,
	}, user, CsrfToken(c)))
}

func (a *App) handleRecipeForm(c echo.Context) error {
	if CurrentUser(c) == nil {
		return redirectToLogin(c)
	}
	tags, err := a.Store.ListTags()
	if err != nil {
		return err
	}
	return Render(c, a.Views.RecipeForm(tags, c.QueryParam("msg"), CsrfToken(c)))
}

func (a *App) handleRecipeCreate(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		return redirectToLogin(c)
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}

	titulo := strings.TrimSpace(c.FormValue("titulo"))
	descripcion := strings.TrimSpace(c.FormValue("descripcion"))
	ingredientes := strings.TrimSpace(c.FormValue("ingredientes"))
	instrucciones := strings.TrimSpace(c.FormValue("instrucciones"))
	if titulo == "" || descripcion == "" || ingredientes == "" || instrucciones == "" {
		return redirectRecipeForm(c, "Todos los campos son obligatorios")
	}
	prep, err := strconv.Atoi(c.FormValue("tiempo_preparacion"))
	if err != nil || prep < 0 {
		return redirectRecipeForm(c, "El tiempo de preparación debe ser un número")
	}
	porciones, err := strconv.Atoi(c.FormValue("porciones"))
	if err != nil || porciones < 1 {
		return redirectRecipeForm(c, "Las porciones deben ser un número")
	}

	var tagIDs []int64
	for _, raw := range FilterEmpty(c.Request().Form["etiquetas"]) {
		tagID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return redirectRecipeForm(c, "Etiqueta no válida")
		}
		tagIDs = append(tagIDs, tagID)
	}
	// A well-formed id pointing at no tag would otherwise surface as an
	// FK failure from the store instead of a validation message.
	ok, err := a.Store.TagsExist(tagIDs)
	if err != nil {
		return err
	}
	if !ok {
		return redirectRecipeForm(c, "Etiqueta no válida")
	}

	id, err := a.Store.CreateRecipe(Recipe{
		Titulo:        titulo,
		Descripcion:   descripcion,
		Ingredientes:  ingredientes,
		Instrucciones: instrucciones,
		PrepMinutes:   prep,
		Porciones:     porciones,
		ImagenURL:     strings.TrimSpace(c.FormValue("imagen_url")),
		UserID:        user.ID,
	}, tagIDs)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, recipeLink(id))
}

func (a *App) handleComment(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		return redirectToLogin(c)
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/recetas")
	}
	body := strings.TrimSpace(c.FormValue("contenido"))
	if body == "" {
		return c.Redirect(http.StatusSeeOther, recipeLink(id)+"?msg="+url.QueryEscape("El comentario no puede estar vacío"))
	}
	if _, err := a.Store.AddComment(id, user.ID, body); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, recipeLink(id)+"#comentarios")
}

func (a *App) handleSitemap(c echo.Context) error {
	recipes, err := a.Store.SearchRecipes("", "", sitemapLimit, 0)
	if err != nil {
		return err
	}
	return a.renderSitemap(c, recipes)
}

func (a *App) handleFeed(c echo.Context) error {
	recipes, err := a.Store.LatestRecipes(feedLimit)
	if err != nil {
		return err
	}
	return a.renderRSS(c, recipes)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /perfil\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func redirectToLogin(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/iniciar-sesion?next="+url.QueryEscape(c.Request().URL.RequestURI()))
}

func redirectRecipeForm(c echo.Context, msg string) error {
	return c.Redirect(http.StatusSeeOther, "/crear-receta?msg="+url.QueryEscape(msg))
}
