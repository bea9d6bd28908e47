package recetario

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// TagNames flattens a tag slice to its names.
func TagNames(tags []Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Nombre
	}
	return names
}

// SplitLines breaks free-text ingredient or instruction blocks into
// non-empty lines for list rendering.
func SplitLines(s string) []string {
	return FilterEmpty(strings.Split(s, "\n"))
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// RecipeJsonLD returns a JSON-LD string for a schema.org Recipe block.
func RecipeJsonLD(r Recipe, cfg SiteConfig) string {
	recipeURL := BuildURL(cfg.URL, r.Link)
	data := map[string]interface{}{
		"@context":           "https://schema.org",
		"@type":              "Recipe",
		"name":               r.Titulo,
		"description":        r.Descripcion,
		"recipeIngredient":   SplitLines(r.Ingredientes),
		"recipeInstructions": SplitLines(r.Instrucciones),
		"recipeYield":        fmt.Sprintf("%d porciones", r.Porciones),
		"totalTime":          fmt.Sprintf("PT%dM", r.PrepMinutes),
		"url":                recipeURL,
	}
	if r.Autor != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  r.Autor,
		}
	}
	if r.ImagenURL != "" {
		data["image"] = r.ImagenURL
	}
	if len(r.Tags) > 0 {
		data["keywords"] = strings.Join(TagNames(r.Tags), ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
