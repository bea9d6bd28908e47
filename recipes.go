package recetario

import (
	"database/sql"
	"fmt"
	"strconv"
)

// CreateRecipe inserts a recipe and its tag bridge rows in one transaction,
// so a failure while linking tags cannot leave a recipe with a subset of
// its intended tags. Returns the new recipe id.
func (s *Store) CreateRecipe(r Recipe, tagIDs []int64) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO recetas (titulo, descripcion, ingredientes, instrucciones, tiempo_preparacion, porciones, imagen_url, id_usuario)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Titulo, r.Descripcion, r.Ingredientes, r.Instrucciones, r.PrepMinutes, r.Porciones, r.ImagenURL, r.UserID)
	if err != nil {
		return 0, fmt.Errorf("insert recipe: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO receta_etiqueta (id_receta, id_etiqueta) VALUES (?, ?)`, id, tagID); err != nil {
			return 0, fmt.Errorf("link tag %d: %w", tagID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// SearchRecipes returns active recipes newest first, optionally filtered by
// a free-text query (substring match on title, description, or ingredients)
// and by a tag name. Each record is enriched with its full tag list via a
// secondary lookup per row.
func (s *Store) SearchRecipes(query, etiqueta string, limit, offset int) ([]Recipe, error) {
	q := `
		SELECT r.id_receta, r.titulo, r.descripcion, r.ingredientes, r.instrucciones,
		       r.tiempo_preparacion, r.porciones, r.imagen_url, r.id_usuario, r.fecha_creacion,
		       u.nombre
		FROM recetas r
		JOIN usuario u ON r.id_usuario = u.id_usuario
		WHERE r.activo = 1`
	var params []any

	if query != "" {
		q += ` AND (r.titulo LIKE ? OR r.descripcion LIKE ? OR r.ingredientes LIKE ?)`
		like := "%" + query + "%"
		params = append(params, like, like, like)
	}
	if etiqueta != "" {
		q += `
		AND r.id_receta IN (
			SELECT re.id_receta
			FROM receta_etiqueta re
			JOIN etiquetas e ON re.id_etiqueta = e.id_etiqueta
			WHERE e.nombre = ?
		)`
		params = append(params, etiqueta)
	}
	q += ` ORDER BY r.fecha_creacion DESC, r.id_receta DESC LIMIT ? OFFSET ?`
	params = append(params, limit, offset)

	rows, err := s.db.Query(q, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		var r Recipe
		if err := rows.Scan(&r.ID, &r.Titulo, &r.Descripcion, &r.Ingredientes, &r.Instrucciones,
			&r.PrepMinutes, &r.Porciones, &r.ImagenURL, &r.UserID, &r.Created, &r.Autor); err != nil {
			return nil, err
		}
		r.Active = true
		r.Link = recipeLink(r.ID)
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range recipes {
		tags, err := s.TagsForRecipe(recipes[i].ID)
		if err != nil {
			return nil, err
		}
		recipes[i].Tags = tags
	}
	return recipes, nil
}

// RecipeByID returns a single recipe enriched with its tag list and the
// author's full display name.
func (s *Store) RecipeByID(id int64) (Recipe, error) {
	var r Recipe
	var activo int
	err := s.db.QueryRow(`
		SELECT r.id_receta, r.titulo, r.descripcion, r.ingredientes, r.instrucciones,
		       r.tiempo_preparacion, r.porciones, r.imagen_url, r.id_usuario, r.fecha_creacion, r.activo,
		       u.nombre || ' ' || u.apellido
		FROM recetas r
		JOIN usuario u ON r.id_usuario = u.id_usuario
		WHERE r.id_receta = ?`, id).
		Scan(&r.ID, &r.Titulo, &r.Descripcion, &r.Ingredientes, &r.Instrucciones,
			&r.PrepMinutes, &r.Porciones, &r.ImagenURL, &r.UserID, &r.Created, &activo, &r.Autor)
	if err != nil {
		return Recipe{}, notFound(err)
	}
	r.Active = activo == 1
	r.Link = recipeLink(r.ID)
	tags, err := s.TagsForRecipe(r.ID)
	if err != nil {
		return Recipe{}, err
	}
	r.Tags = tags
	return r, nil
}

// RelatedRecipes returns up to limit recipes that share at least one tag
// with the given recipe, excluding the recipe itself. No ranking by
// overlap count. When fewer than limit share a tag, the result is padded
// with the most recently created other recipes until the limit is reached
// or the corpus runs out.
func (s *Store) RelatedRecipes(id int64, limit int) ([]Recipe, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT r.id_receta, r.titulo, r.descripcion, r.imagen_url, r.fecha_creacion, u.nombre
		FROM recetas r
		JOIN usuario u ON r.id_usuario = u.id_usuario
		JOIN receta_etiqueta re ON r.id_receta = re.id_receta
		WHERE r.id_receta != ? AND r.activo = 1
		  AND re.id_etiqueta IN (SELECT id_etiqueta FROM receta_etiqueta WHERE id_receta = ?)
		LIMIT ?`, id, id, limit)
	if err != nil {
		return nil, err
	}
	related, err := scanRecipeCards(rows)
	if err != nil {
		return nil, err
	}

	if len(related) < limit {
		seen := make(map[int64]struct{}, len(related)+1)
		seen[id] = struct{}{}
		for _, r := range related {
			seen[r.ID] = struct{}{}
		}
		rows, err := s.db.Query(`
			SELECT r.id_receta, r.titulo, r.descripcion, r.imagen_url, r.fecha_creacion, u.nombre
			FROM recetas r
			JOIN usuario u ON r.id_usuario = u.id_usuario
			WHERE r.id_receta != ? AND r.activo = 1
			ORDER BY r.fecha_creacion DESC, r.id_receta DESC
			LIMIT ?`, id, limit)
		if err != nil {
			return nil, err
		}
		recent, err := scanRecipeCards(rows)
		if err != nil {
			return nil, err
		}
		for _, r := range recent {
			if len(related) >= limit {
				break
			}
			if _, ok := seen[r.ID]; ok {
				continue
			}
			related = append(related, r)
			seen[r.ID] = struct{}{}
		}
	}
	return related, nil
}

// RecipesByUser returns a user's recipes newest first, for the profile page.
func (s *Store) RecipesByUser(userID int64) ([]Recipe, error) {
	rows, err := s.db.Query(`
		SELECT r.id_receta, r.titulo, r.descripcion, r.imagen_url, r.fecha_creacion, u.nombre
		FROM recetas r
		JOIN usuario u ON r.id_usuario = u.id_usuario
		WHERE r.id_usuario = ? AND r.activo = 1
		ORDER BY r.fecha_creacion DESC, r.id_receta DESC`, userID)
	if err != nil {
		return nil, err
	}
	return scanRecipeCards(rows)
}

// LatestRecipes returns the most recently created active recipes with
// their author name, for the landing page.
func (s *Store) LatestRecipes(limit int) ([]Recipe, error) {
	rows, err := s.db.Query(`
		SELECT r.id_receta, r.titulo, r.descripcion, r.imagen_url, r.fecha_creacion, u.nombre
		FROM recetas r
		JOIN usuario u ON r.id_usuario = u.id_usuario
		WHERE r.activo = 1
		ORDER BY r.fecha_creacion DESC, r.id_receta DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return scanRecipeCards(rows)
}

// scanRecipeCards reads the abbreviated card-sized column set shared by
// the related and latest queries. The caller's rows are always closed.
func scanRecipeCards(rows *sql.Rows) ([]Recipe, error) {
	defer rows.Close()
	var recipes []Recipe
	for rows.Next() {
		var r Recipe
		if err := rows.Scan(&r.ID, &r.Titulo, &r.Descripcion, &r.ImagenURL, &r.Created, &r.Autor); err != nil {
			return nil, err
		}
		r.Active = true
		r.Link = recipeLink(r.ID)
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

func recipeLink(id int64) string {
	return "/receta/" + strconv.FormatInt(id, 10)
}
