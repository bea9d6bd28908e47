package recetario

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

const sitemapLimit = 5000

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) renderSitemap(c echo.Context, recipes []Recipe) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
		{Loc: BuildURL(base, "recetas")},
	}
	for _, r := range recipes {
		// fecha_creacion is SQLite CURRENT_TIMESTAMP text; the date part
		// alone is valid for <lastmod>.
		lastMod := ""
		if len(r.Created) >= 10 {
			lastMod = r.Created[:10]
		}
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, r.Link),
			LastMod: lastMod,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
