package recetario

// User is a registered account. The password hash never leaves the
// store layer; records returned to handlers carry only display fields.
type User struct {
	ID         int64
	Nombre     string
	Apellido   string
	Email      string
	Registered string
	Active     bool
}

// Recipe is the core content type stored in SQLite and rendered by templates.
type Recipe struct {
	ID            int64
	Titulo        string
	Descripcion   string
	Ingredientes  string
	Instrucciones string
	PrepMinutes   int
	Porciones     int
	ImagenURL     string
	UserID        int64
	Autor         string // author display name, filled by joins
	Created       string
	Active        bool
	Tags          []Tag
	Link          string
}

// Tag is a named label attachable to recipes in a many-to-many relation.
type Tag struct {
	ID     int64
	Nombre string
}

// Comment is a user remark on a recipe.
type Comment struct {
	ID       int64
	RecipeID int64
	UserID   int64
	Autor    string // commenter display name, filled by joins
	Body     string
	Created  string
}

// VoteTally aggregates like/dislike counts for a recipe. Both counts
// are zero when no votes exist.
type VoteTally struct {
	Likes    int
	Dislikes int
}

// RecipeDetail bundles everything the recipe page renders.
type RecipeDetail struct {
	Recipe   Recipe
	Comments []Comment
	Tally    VoteTally
	MyVote   int // +1, -1, or 0 when the viewer has not voted
	Related  []Recipe
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
