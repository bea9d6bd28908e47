package recetario

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Ensalada César", "ensalada-c-sar"},
		{"Sopa de Lentejas", "sopa-de-lentejas"},
		{"  Torta   2024  ", "torta-2024"},
		{"¡Hola!", "hola"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	cases := []struct {
		base string
		segs []string
		want string
	}{
		{"https://example.com", []string{"receta", "3"}, "https://example.com/receta/3"},
		{"https://example.com/", []string{"/recetas"}, "https://example.com/recetas"},
		{"https://example.com", nil, "https://example.com"},
	}
	for _, c := range cases {
		if got := BuildURL(c.base, c.segs...); got != c.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", c.base, c.segs, got, c.want)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{"a", "", "  ", "b", "\t"})
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterEmpty = %v, want %v", got, want)
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("harina\n\n  \nagua\r\nsal")
	if len(got) != 3 {
		t.Fatalf("line count = %d, want 3 (%v)", len(got), got)
	}
	if got[0] != "harina" || got[2] != "sal" {
		t.Errorf("lines = %v", got)
	}
}

func TestRecipeJsonLD(t *testing.T) {
	r := Recipe{
		Titulo:        "Sopa",
		Descripcion:   "Una sopa simple",
		Ingredientes:  "agua\nsal",
		Instrucciones: "Hervir.\nServir.",
		PrepMinutes:   20,
		Porciones:     2,
		Autor:         "Ana García",
		Link:          "/receta/7",
		Tags:          []Tag{{Nombre: "Vegano"}, {Nombre: "Sin TACC"}},
	}
	cfg := SiteConfig{URL: "https://example.com"}

	var data map[string]any
	if err := json.Unmarshal([]byte(RecipeJsonLD(r, cfg)), &data); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if data["@type"] != "Recipe" {
		t.Errorf("@type = %v", data["@type"])
	}
	if data["url"] != "https://example.com/receta/7" {
		t.Errorf("url = %v", data["url"])
	}
	if data["totalTime"] != "PT20M" {
		t.Errorf("totalTime = %v", data["totalTime"])
	}
	if data["recipeYield"] != "2 porciones" {
		t.Errorf("recipeYield = %v", data["recipeYield"])
	}
	ingredients, ok := data["recipeIngredient"].([]any)
	if !ok || len(ingredients) != 2 {
		t.Errorf("recipeIngredient = %v", data["recipeIngredient"])
	}
	if data["keywords"] != "Vegano, Sin TACC" {
		t.Errorf("keywords = %v", data["keywords"])
	}
	author, ok := data["author"].(map[string]any)
	if !ok || author["name"] != "Ana García" {
		t.Errorf("author = %v", data["author"])
	}
	if _, present := data["image"]; present {
		t.Error("image should be omitted when empty")
	}
}

func TestWebsiteJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Recetario", URL: "https://example.com", Description: "Recetas caseras"}
	var data map[string]any
	if err := json.Unmarshal([]byte(WebsiteJsonLD(cfg)), &data); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if data["@type"] != "WebSite" || data["name"] != "Recetario" {
		t.Errorf("data = %v", data)
	}
}
