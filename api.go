package recetario

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// voteRequest is the wire format the vote widget sends.
type voteRequest struct {
	TipoVoto int `json:"tipo_voto"`
}

// voteResponse reports the fresh tally plus the caller's vote after the
// cast: 1, -1, or 0 when the cast toggled the vote off.
type voteResponse struct {
	Success  bool `json:"success"`
	Likes    int  `json:"likes"`
	Dislikes int  `json:"dislikes"`
	MiVoto   int  `json:"mi_voto"`
}

type apiError struct {
	Error string `json:"error"`
}

func (a *App) handleVote(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, apiError{Error: "No autorizado"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: "Receta no válida"})
	}
	var req voteRequest
	if err := c.Bind(&req); err != nil || (req.TipoVoto != 1 && req.TipoVoto != -1) {
		return c.JSON(http.StatusBadRequest, apiError{Error: "Tipo de voto no válido"})
	}
	if _, err := a.Store.RecipeByID(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, apiError{Error: "Receta no encontrada"})
		}
		return err
	}

	myVote, tally, err := a.Store.CastVote(id, user.ID, req.TipoVoto)
	if err != nil {
		if errors.Is(err, ErrInvalidVote) {
			return c.JSON(http.StatusBadRequest, apiError{Error: "Tipo de voto no válido"})
		}
		return err
	}
	return c.JSON(http.StatusOK, voteResponse{
		Success:  true,
		Likes:    tally.Likes,
		Dislikes: tally.Dislikes,
		MiVoto:   myVote,
	})
}
