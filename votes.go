package recetario

import (
	"database/sql"
	"fmt"
)

// CastVote records a user's vote on a recipe and returns the vote now in
// effect together with the fresh tally.
//
// Per (recipe, user) pair the states are no-vote, upvoted, downvoted.
// Casting the value already stored clears the row (toggle-off, not an
// error); any other value inserts the row or overwrites it in place.
// Both steps are single conditional statements inside one transaction,
// so concurrent casts cannot produce a second row — the composite
// primary key on (id_receta, id_usuario) is the hard invariant.
func (s *Store) CastVote(recipeID, userID int64, value int) (int, VoteTally, error) {
	if value != 1 && value != -1 {
		return 0, VoteTally{}, ErrInvalidVote
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, VoteTally{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM votos WHERE id_receta = ? AND id_usuario = ? AND tipo_voto = ?`,
		recipeID, userID, value)
	if err != nil {
		return 0, VoteTally{}, fmt.Errorf("clear vote: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, VoteTally{}, err
	}

	myVote := 0
	if deleted == 0 {
		if _, err := tx.Exec(`
			INSERT INTO votos (id_receta, id_usuario, tipo_voto) VALUES (?, ?, ?)
			ON CONFLICT(id_receta, id_usuario) DO UPDATE SET tipo_voto = excluded.tipo_voto`,
			recipeID, userID, value); err != nil {
			return 0, VoteTally{}, fmt.Errorf("upsert vote: %w", err)
		}
		myVote = value
	}

	tally, err := tallyVotes(tx, recipeID)
	if err != nil {
		return 0, VoteTally{}, err
	}
	if err := tx.Commit(); err != nil {
		return 0, VoteTally{}, err
	}
	return myVote, tally, nil
}

// Tally returns the like/dislike counts for a recipe. A recipe with no
// votes yields {0, 0}, never an error.
func (s *Store) Tally(recipeID int64) (VoteTally, error) {
	return tallyVotes(s.db, recipeID)
}

// CurrentVote returns +1 or -1 for the user's stored vote on the recipe,
// or 0 when no vote row exists.
func (s *Store) CurrentVote(recipeID, userID int64) (int, error) {
	var v int
	err := s.db.QueryRow(`SELECT tipo_voto FROM votos WHERE id_receta = ? AND id_usuario = ?`,
		recipeID, userID).Scan(&v)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return v, nil
}

// querier lets tallyVotes run against either the pool or a transaction.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func tallyVotes(q querier, recipeID int64) (VoteTally, error) {
	var t VoteTally
	err := q.QueryRow(`
		SELECT COALESCE(SUM(CASE WHEN tipo_voto = 1 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN tipo_voto = -1 THEN 1 ELSE 0 END), 0)
		FROM votos WHERE id_receta = ?`, recipeID).
		Scan(&t.Likes, &t.Dislikes)
	if err != nil {
		return VoteTally{}, fmt.Errorf("tally votes: %w", err)
	}
	return t, nil
}
