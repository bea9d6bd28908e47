package recetario

import (
	"errors"
	"testing"
)

func TestCastVoteToggle(t *testing.T) {
	s := setupTestStore(t)
	chef := mustRegister(t, s, "Chef", "Uno", "chef@example.com", "pw")
	voter := mustRegister(t, s, "Ana", "García", "ana@example.com", "pw")
	recipeID := mustCreateRecipe(t, s, chef, "Sopa")

	// First like.
	myVote, tally, err := s.CastVote(recipeID, voter, 1)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if myVote != 1 {
		t.Errorf("myVote = %d, want 1", myVote)
	}
	if tally.Likes != 1 || tally.Dislikes != 0 {
		t.Errorf("tally = %+v, want {1 0}", tally)
	}

	// Same vote again removes it.
	myVote, tally, err = s.CastVote(recipeID, voter, 1)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if myVote != 0 {
		t.Errorf("myVote = %d, want 0 after toggle off", myVote)
	}
	if tally.Likes != 0 || tally.Dislikes != 0 {
		t.Errorf("tally = %+v, want {0 0}", tally)
	}

	// Dislike from the cleared state.
	myVote, tally, err = s.CastVote(recipeID, voter, -1)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if myVote != -1 {
		t.Errorf("myVote = %d, want -1", myVote)
	}
	if tally.Likes != 0 || tally.Dislikes != 1 {
		t.Errorf("tally = %+v, want {0 1}", tally)
	}
}

func TestCastVoteSwitchDirection(t *testing.T) {
	s := setupTestStore(t)
	chef := mustRegister(t, s, "Chef", "Uno", "chef@example.com", "pw")
	voter := mustRegister(t, s, "Ana", "García", "ana@example.com", "pw")
	recipeID := mustCreateRecipe(t, s, chef, "Sopa")

	if _, _, err := s.CastVote(recipeID, voter, 1); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	// Opposite vote replaces, never stacks: one row per (recipe, user).
	myVote, tally, err := s.CastVote(recipeID, voter, -1)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if myVote != -1 {
		t.Errorf("myVote = %d, want -1", myVote)
	}
	if tally.Likes != 0 || tally.Dislikes != 1 {
		t.Errorf("tally = %+v, want {0 1}", tally)
	}
}

func TestCastVoteMultipleUsers(t *testing.T) {
	s := setupTestStore(t)
	chef := mustRegister(t, s, "Chef", "Uno", "chef@example.com", "pw")
	ana := mustRegister(t, s, "Ana", "García", "ana@example.com", "pw")
	beto := mustRegister(t, s, "Beto", "López", "beto@example.com", "pw")
	recipeID := mustCreateRecipe(t, s, chef, "Sopa")

	if _, _, err := s.CastVote(recipeID, ana, 1); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if _, _, err := s.CastVote(recipeID, chef, 1); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	_, tally, err := s.CastVote(recipeID, beto, -1)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if tally.Likes != 2 || tally.Dislikes != 1 {
		t.Errorf("tally = %+v, want {2 1}", tally)
	}
}

func TestCastVoteInvalidValue(t *testing.T) {
	s := setupTestStore(t)
	chef := mustRegister(t, s, "Chef", "Uno", "chef@example.com", "pw")
	recipeID := mustCreateRecipe(t, s, chef, "Sopa")

	for _, v := range []int{0, 2, -2, 100} {
		if _, _, err := s.CastVote(recipeID, chef, v); !errors.Is(err, ErrInvalidVote) {
			t.Errorf("CastVote(%d): err = %v, want ErrInvalidVote", v, err)
		}
	}
}

func TestTallyEmpty(t *testing.T) {
	s := setupTestStore(t)
	chef := mustRegister(t, s, "Chef", "Uno", "chef@example.com", "pw")
	recipeID := mustCreateRecipe(t, s, chef, "Sopa")

	tally, err := s.Tally(recipeID)
	if err != nil {
		t.Fatalf("Tally failed: %v", err)
	}
	if tally.Likes != 0 || tally.Dislikes != 0 {
		t.Errorf("tally = %+v, want {0 0}", tally)
	}
}

func TestCurrentVote(t *testing.T) {
	s := setupTestStore(t)
	chef := mustRegister(t, s, "Chef", "Uno", "chef@example.com", "pw")
	voter := mustRegister(t, s, "Ana", "García", "ana@example.com", "pw")
	recipeID := mustCreateRecipe(t, s, chef, "Sopa")

	v, err := s.CurrentVote(recipeID, voter)
	if err != nil {
		t.Fatalf("CurrentVote failed: %v", err)
	}
	if v != 0 {
		t.Errorf("v = %d, want 0 before voting", v)
	}

	if _, _, err := s.CastVote(recipeID, voter, -1); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	v, err = s.CurrentVote(recipeID, voter)
	if err != nil {
		t.Fatalf("CurrentVote failed: %v", err)
	}
	if v != -1 {
		t.Errorf("v = %d, want -1", v)
	}
}

func TestVotesCascadeWithRecipe(t *testing.T) {
	s := setupTestStore(t)
	chef := mustRegister(t, s, "Chef", "Uno", "chef@example.com", "pw")
	recipeID := mustCreateRecipe(t, s, chef, "Sopa")
	if _, _, err := s.CastVote(recipeID, chef, 1); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	if _, err := s.db.Exec(`DELETE FROM recetas WHERE id_receta = ?`, recipeID); err != nil {
		t.Fatalf("delete recipe: %v", err)
	}
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM votos WHERE id_receta = ?`, recipeID).Scan(&count); err != nil {
		t.Fatalf("count votes: %v", err)
	}
	if count != 0 {
		t.Errorf("vote rows = %d, want 0 after cascade", count)
	}
}
