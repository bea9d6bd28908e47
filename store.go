package recetario

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// Store wraps a SQLite database and provides CRUD operations for users,
// recipes, tags, comments, and votes.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and turn
	// foreign keys on: SQLite ships with enforcement off, and the bridge and
	// cascade rules depend on it.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA foreign_keys=ON;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ensureSchema creates every table if absent, ordered so foreign-key
// targets exist before their dependents: usuario and etiquetas first,
// then recetas, then comentarios and votos, and the recipe-tag bridge
// last. The whole batch runs in one transaction so a failure cannot
// leave a partial subset of tables behind.
func (s *Store) ensureSchema() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return tx.Commit()
}

// Timestamp columns are declared TEXT, not TIMESTAMP: the driver converts
// time-typed columns to time.Time on scan, and the records carry the stored
// CURRENT_TIMESTAMP text ("2006-01-02 15:04:05") as-is.
const schema = `
CREATE TABLE IF NOT EXISTS usuario (
    id_usuario INTEGER PRIMARY KEY AUTOINCREMENT,
    nombre TEXT NOT NULL,
    apellido TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    password TEXT NOT NULL,
    fecha_registro TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    activo INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS etiquetas (
    id_etiqueta INTEGER PRIMARY KEY AUTOINCREMENT,
    nombre TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS recetas (
    id_receta INTEGER PRIMARY KEY AUTOINCREMENT,
    titulo TEXT NOT NULL,
    descripcion TEXT NOT NULL DEFAULT '',
    ingredientes TEXT NOT NULL DEFAULT '',
    instrucciones TEXT NOT NULL DEFAULT '',
    tiempo_preparacion INTEGER NOT NULL DEFAULT 0,
    porciones INTEGER NOT NULL DEFAULT 1,
    imagen_url TEXT NOT NULL DEFAULT '',
    id_usuario INTEGER NOT NULL,
    fecha_creacion TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    activo INTEGER NOT NULL DEFAULT 1,
    FOREIGN KEY (id_usuario) REFERENCES usuario(id_usuario)
);

CREATE TABLE IF NOT EXISTS comentarios (
    id_comentario INTEGER PRIMARY KEY AUTOINCREMENT,
    descripcion TEXT NOT NULL,
    id_usuario INTEGER NOT NULL,
    id_receta INTEGER NOT NULL,
    fecha_creacion TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (id_usuario) REFERENCES usuario(id_usuario),
    FOREIGN KEY (id_receta) REFERENCES recetas(id_receta) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS votos (
    id_receta INTEGER NOT NULL,
    id_usuario INTEGER NOT NULL,
    tipo_voto INTEGER NOT NULL CHECK (tipo_voto IN (1, -1)),
    fecha_creacion TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (id_receta, id_usuario),
    FOREIGN KEY (id_receta) REFERENCES recetas(id_receta) ON DELETE CASCADE,
    FOREIGN KEY (id_usuario) REFERENCES usuario(id_usuario) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS receta_etiqueta (
    id_receta INTEGER NOT NULL,
    id_etiqueta INTEGER NOT NULL,
    PRIMARY KEY (id_receta, id_etiqueta),
    FOREIGN KEY (id_receta) REFERENCES recetas(id_receta) ON DELETE CASCADE,
    FOREIGN KEY (id_etiqueta) REFERENCES etiquetas(id_etiqueta) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_recetas_fecha ON recetas(fecha_creacion);
CREATE INDEX IF NOT EXISTS idx_comentarios_receta ON comentarios(id_receta);
CREATE INDEX IF NOT EXISTS idx_receta_etiqueta_etiqueta ON receta_etiqueta(id_etiqueta);
`
