package recetario

import (
	"errors"
	"fmt"
)

// baselineTags is the dietary tag set every deployment starts with.
var baselineTags = []string{
	"Sin TACC", "Vegetariano", "Vegano", "Sin Lactosa", "Sin Huevo",
	"Apto Diabéticos", "Bajo en Sodio", "Sin Azúcar", "Keto", "Alto en Proteínas",
}

const (
	seedUserEmail    = "chef@ejemplo.com"
	seedUserPassword = "password123"
)

// Seed ensures a baseline set of tags plus a demo user and recipe exist.
// Safe to run repeatedly: tags are get-or-create, the demo user is skipped
// when the email is taken, and the sample recipe is skipped once the demo
// user owns any recipe.
func (s *Store) Seed() error {
	for _, nombre := range baselineTags {
		if _, err := s.GetOrCreateTag(nombre); err != nil {
			return fmt.Errorf("seed tag %q: %w", nombre, err)
		}
	}

	user, err := s.UserByEmail(seedUserEmail)
	if errors.Is(err, ErrNotFound) {
		id, err := s.Register("Chef", "Ejemplo", seedUserEmail, seedUserPassword)
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		user = User{ID: id}
	} else if err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM recetas WHERE id_usuario = ?`, user.ID).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var tagIDs []int64
	for _, nombre := range []string{"Sin TACC", "Alto en Proteínas"} {
		id, err := s.GetOrCreateTag(nombre)
		if err != nil {
			return err
		}
		tagIDs = append(tagIDs, id)
	}
	_, err = s.CreateRecipe(Recipe{
		Titulo:        "Ensalada César Clásica",
		Descripcion:   "Una ensalada fresca y deliciosa con pollo a la parrilla y aderezo César casero.",
		Ingredientes:  "1 lechuga romana\n1 pechuga de pollo\n50g de queso parmesano\n1 taza de crutones\n2 cucharadas de jugo de limón\n1 diente de ajo\n1 cucharadita de mostaza\n1/2 taza de aceite de oliva\nSal y pimienta al gusto",
		Instrucciones: "1. Cocinar el pollo a la parrilla y cortar en tiras.\n2. Lavar y cortar la lechuga.\n3. Mezclar el jugo de limón, ajo, mostaza y aceite para el aderezo.\n4. Mezclar todos los ingredientes y espolvorear con queso parmesano.",
		PrepMinutes:   20,
		Porciones:     2,
		ImagenURL:     "https://images.unsplash.com/photo-1546793665-c74683f339c1?auto=format&fit=crop&w=800&q=80",
		UserID:        user.ID,
	}, tagIDs)
	if err != nil {
		return fmt.Errorf("seed recipe: %w", err)
	}
	return nil
}
