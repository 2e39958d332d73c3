package api

import (
	"errors"
	"net/http"
	"time"

	"arenapix-be/internal/middleware"
	"arenapix-be/internal/team"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	svc team.Service
}

func NewTeamHandler(svc team.Service) *TeamHandler {
	return &TeamHandler{svc: svc}
}

type teamRequest struct {
	Name     string  `json:"name" binding:"required"`
	Modality string  `json:"modality"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	BadgeURL *string `json:"badge_url"`
}

func (h *TeamHandler) Create(c *gin.Context) {
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.svc.CreateTeam(c.Request.Context(), &team.Team{
		OwnerID:  middleware.CurrentUserID(c),
		Name:     req.Name,
		Modality: req.Modality,
		City:     req.City,
		State:    req.State,
		BadgeURL: req.BadgeURL,
	})
	if err != nil {
		writeTeamError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TeamHandler) ListMine(c *gin.Context) {
	teams, err := h.svc.ListMyTeams(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		writeTeamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

func (h *TeamHandler) Get(c *gin.Context) {
	teamID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		writeTeamError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TeamHandler) Update(c *gin.Context) {
	teamID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.svc.UpdateTeam(c.Request.Context(), &team.Team{
		ID:       teamID,
		OwnerID:  middleware.CurrentUserID(c),
		Name:     req.Name,
		Modality: req.Modality,
		City:     req.City,
		State:    req.State,
		BadgeURL: req.BadgeURL,
	})
	if err != nil {
		writeTeamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "team updated"})
}

func (h *TeamHandler) Delete(c *gin.Context) {
	teamID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteTeam(c.Request.Context(), teamID, middleware.CurrentUserID(c)); err != nil {
		writeTeamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "team deleted"})
}

type playerRequest struct {
	Name     string  `json:"name" binding:"required"`
	Number   int     `json:"number"`
	Position string  `json:"position"`
	PhotoURL *string `json:"photo_url"`
}

func (h *TeamHandler) AddPlayer(c *gin.Context) {
	teamID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.svc.AddPlayer(c.Request.Context(), middleware.CurrentUserID(c), &team.Player{
		TeamID:   teamID,
		Name:     req.Name,
		Number:   req.Number,
		Position: req.Position,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		writeTeamError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *TeamHandler) ListPlayers(c *gin.Context) {
	teamID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	players, err := h.svc.ListPlayers(c.Request.Context(), teamID)
	if err != nil {
		writeTeamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}

func (h *TeamHandler) UpdatePlayer(c *gin.Context) {
	teamID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	playerID, ok := uintParam(c, "playerId")
	if !ok {
		return
	}
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.svc.UpdatePlayer(c.Request.Context(), middleware.CurrentUserID(c), &team.Player{
		ID:       playerID,
		TeamID:   teamID,
		Name:     req.Name,
		Number:   req.Number,
		Position: req.Position,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		writeTeamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "player updated"})
}

func (h *TeamHandler) RemovePlayer(c *gin.Context) {
	teamID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	playerID, ok := uintParam(c, "playerId")
	if !ok {
		return
	}
	if err := h.svc.RemovePlayer(c.Request.Context(), middleware.CurrentUserID(c), playerID, teamID); err != nil {
		writeTeamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "player removed"})
}

type gameRequest struct {
	Opponent string    `json:"opponent" binding:"required"`
	Venue    string    `json:"venue"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	Notes    *string   `json:"notes"`
}

func (h *TeamHandler) AddGame(c *gin.Context) {
	teamID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req gameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, err := h.svc.AddGame(c.Request.Context(), middleware.CurrentUserID(c), &team.Game{
		TeamID:   teamID,
		Opponent: req.Opponent,
		Venue:    req.Venue,
		StartsAt: req.StartsAt,
		Notes:    req.Notes,
	})
	if err != nil {
		writeTeamError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (h *TeamHandler) ListGames(c *gin.Context) {
	teamID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var filter team.GameFilter
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = &t
		}
	}

	games, err := h.svc.ListGames(c.Request.Context(), teamID, filter)
	if err != nil {
		writeTeamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

func (h *TeamHandler) UpdateGame(c *gin.Context) {
	teamID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	gameID, ok := uintParam(c, "gameId")
	if !ok {
		return
	}
	var req gameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.svc.UpdateGame(c.Request.Context(), middleware.CurrentUserID(c), &team.Game{
		ID:       gameID,
		TeamID:   teamID,
		Opponent: req.Opponent,
		Venue:    req.Venue,
		StartsAt: req.StartsAt,
		Notes:    req.Notes,
	})
	if err != nil {
		writeTeamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "game updated"})
}

func (h *TeamHandler) RemoveGame(c *gin.Context) {
	teamID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	gameID, ok := uintParam(c, "gameId")
	if !ok {
		return
	}
	if err := h.svc.RemoveGame(c.Request.Context(), middleware.CurrentUserID(c), gameID, teamID); err != nil {
		writeTeamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "game removed"})
}

func writeTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, team.ErrTeamNotFound),
		errors.Is(err, team.ErrPlayerNotFound),
		errors.Is(err, team.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, team.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, team.ErrInvalidName),
		errors.Is(err, team.ErrInvalidGame),
		errors.Is(err, team.ErrInvalidPlayer),
		errors.Is(err, team.ErrGameInThePast):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
