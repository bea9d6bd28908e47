package recetario

import (
	"fmt"
	"strings"
)

// GetOrCreateTag returns the id of the tag with the given name, inserting
// it first if absent. The match is case-sensitive and exact. The insert
// uses ON CONFLICT DO NOTHING followed by a re-select so two concurrent
// callers with the same name both land on the same row.
func (s *Store) GetOrCreateTag(nombre string) (int64, error) {
	if _, err := s.db.Exec(`INSERT INTO etiquetas (nombre) VALUES (?) ON CONFLICT(nombre) DO NOTHING`, nombre); err != nil {
		return 0, fmt.Errorf("insert tag: %w", err)
	}
	var id int64
	if err := s.db.QueryRow(`SELECT id_etiqueta FROM etiquetas WHERE nombre = ?`, nombre).Scan(&id); err != nil {
		return 0, fmt.Errorf("select tag: %w", err)
	}
	return id, nil
}

// TagsExist reports whether every id refers to an existing tag.
// Duplicate ids count once.
func (s *Store) TagsExist(ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	seen := make(map[int64]struct{}, len(ids))
	var args []any
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(args)), ",")
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM etiquetas WHERE id_etiqueta IN (`+placeholders+`)`, args...).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == len(args), nil
}

// ListTags returns every tag ordered by name, for filter and creation UIs.
func (s *Store) ListTags() ([]Tag, error) {
	rows, err := s.db.Query(`SELECT id_etiqueta, nombre FROM etiquetas ORDER BY nombre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Nombre); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// TagsForRecipe returns the tags bridged to a recipe.
func (s *Store) TagsForRecipe(recipeID int64) ([]Tag, error) {
	rows, err := s.db.Query(`
		SELECT e.id_etiqueta, e.nombre
		FROM etiquetas e
		JOIN receta_etiqueta re ON e.id_etiqueta = re.id_etiqueta
		WHERE re.id_receta = ?
		ORDER BY e.nombre`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Nombre); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
