package main

import (
	"fmt"

	"github.com/eringen/recetario"
)

// runSeed opens the store, which creates the schema, and runs the
// idempotent baseline seeding.
func runSeed() error {
	path := recetario.EnvOr("DATABASE_PATH", "data/recetas.db")
	store, err := recetario.NewStore(path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.Seed(); err != nil {
		return err
	}
	fmt.Printf("seeded %s\n", path)
	return nil
}
