package recetario

import "fmt"

// AddComment stores a comment on a recipe and returns its id. Body
// validation (non-empty after trimming) happens at the handler boundary.
func (s *Store) AddComment(recipeID, userID int64, body string) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO comentarios (id_receta, id_usuario, descripcion) VALUES (?, ?, ?)`,
		recipeID, userID, body)
	if err != nil {
		return 0, fmt.Errorf("insert comment: %w", err)
	}
	return res.LastInsertId()
}

// CommentsForRecipe returns a recipe's comments newest first, each joined
// with the commenting user's display name.
func (s *Store) CommentsForRecipe(recipeID int64) ([]Comment, error) {
	rows, err := s.db.Query(`
		SELECT c.id_comentario, c.id_receta, c.id_usuario, c.descripcion, c.fecha_creacion,
		       u.nombre || ' ' || u.apellido
		FROM comentarios c
		JOIN usuario u ON c.id_usuario = u.id_usuario
		WHERE c.id_receta = ?
		ORDER BY c.fecha_creacion DESC, c.id_comentario DESC`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.RecipeID, &c.UserID, &c.Body, &c.Created, &c.Autor); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
