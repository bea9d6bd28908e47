package recetario

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Register creates a new account with a bcrypt-hashed password and returns
// the new user id. The email is checked explicitly first so callers get
// ErrDuplicateEmail without tripping the constraint in the common case;
// the UNIQUE constraint on usuario.email remains the backstop for races.
func (s *Store) Register(nombre, apellido, email, password string) (int64, error) {
	exists, err := s.EmailExists(email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrDuplicateEmail
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	res, err := s.db.Exec(`INSERT INTO usuario (nombre, apellido, email, password) VALUES (?, ?, ?, ?)`,
		nombre, apellido, email, string(hash))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

// Authenticate looks up an active user by email and verifies the password.
// On success the returned User carries only non-sensitive fields; the hash
// never leaves this function. A missing user and a wrong password both
// return ErrNotFound so callers cannot distinguish the two.
func (s *Store) Authenticate(email, password string) (User, error) {
	var u User
	var hash string
	err := s.db.QueryRow(`SELECT id_usuario, nombre, apellido, email, password FROM usuario WHERE email = ? AND activo = 1`, email).
		Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Email, &hash)
	if err != nil {
		return User{}, notFound(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, ErrNotFound
	}
	u.Active = true
	return u, nil
}

// UserByID returns a user record without the password hash.
func (s *Store) UserByID(id int64) (User, error) {
	var u User
	var activo int
	err := s.db.QueryRow(`SELECT id_usuario, nombre, apellido, email, fecha_registro, activo FROM usuario WHERE id_usuario = ?`, id).
		Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Email, &u.Registered, &activo)
	if err != nil {
		return User{}, notFound(err)
	}
	u.Active = activo == 1
	return u, nil
}

// UserByEmail returns a user record without the password hash.
func (s *Store) UserByEmail(email string) (User, error) {
	var u User
	var activo int
	err := s.db.QueryRow(`SELECT id_usuario, nombre, apellido, email, fecha_registro, activo FROM usuario WHERE email = ?`, email).
		Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Email, &u.Registered, &activo)
	if err != nil {
		return User{}, notFound(err)
	}
	u.Active = activo == 1
	return u, nil
}

// EmailExists reports whether an account is registered under email.
func (s *Store) EmailExists(email string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM usuario WHERE email = ?`, email).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
