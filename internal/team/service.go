package team

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidName    = errors.New("team name is required")
	ErrInvalidGame    = errors.New("game opponent and start time are required")
	ErrInvalidPlayer  = errors.New("player name is required")
	ErrGameInThePast  = errors.New("game cannot be scheduled in the past")
)

type Service interface {
	CreateTeam(ctx context.Context, t *Team) (*Team, error)
	GetTeam(ctx context.Context, teamID uint) (*Team, error)
	ListMyTeams(ctx context.Context, ownerID uint) ([]*Team, error)
	UpdateTeam(ctx context.Context, t *Team) error
	DeleteTeam(ctx context.Context, teamID, ownerID uint) error

	AddPlayer(ctx context.Context, ownerID uint, p *Player) (*Player, error)
	ListPlayers(ctx context.Context, teamID uint) ([]*Player, error)
	UpdatePlayer(ctx context.Context, ownerID uint, p *Player) error
	RemovePlayer(ctx context.Context, ownerID, playerID, teamID uint) error

	AddGame(ctx context.Context, ownerID uint, g *Game) (*Game, error)
	ListGames(ctx context.Context, teamID uint, filter GameFilter) ([]*Game, error)
	UpdateGame(ctx context.Context, ownerID uint, g *Game) error
	RemoveGame(ctx context.Context, ownerID, gameID, teamID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateTeam(ctx context.Context, t *Team) (*Team, error) {
	if t.OwnerID == 0 {
		return nil, ErrUnauthorized
	}
	if t.Name == "" {
		return nil, ErrInvalidName
	}
	return s.repo.CreateTeam(ctx, t)
}

func (s *service) GetTeam(ctx context.Context, teamID uint) (*Team, error) {
	return s.repo.GetTeam(ctx, teamID)
}

func (s *service) ListMyTeams(ctx context.Context, ownerID uint) ([]*Team, error) {
	if ownerID == 0 {
		return nil, ErrUnauthorized
	}
	return s.repo.ListTeamsByOwner(ctx, ownerID)
}

func (s *service) UpdateTeam(ctx context.Context, t *Team) error {
	if t.Name == "" {
		return ErrInvalidName
	}
	return s.repo.UpdateTeam(ctx, t)
}

func (s *service) DeleteTeam(ctx context.Context, teamID, ownerID uint) error {
	return s.repo.DeleteTeam(ctx, teamID, ownerID)
}

// requireOwnership loads the team and checks it belongs to ownerID.
func (s *service) requireOwnership(ctx context.Context, teamID, ownerID uint) error {
	t, err := s.repo.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if t.OwnerID != ownerID {
		return ErrUnauthorized
	}
	return nil
}

func (s *service) AddPlayer(ctx context.Context, ownerID uint, p *Player) (*Player, error) {
	if p.Name == "" {
		return nil, ErrInvalidPlayer
	}
	if err := s.requireOwnership(ctx, p.TeamID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.AddPlayer(ctx, p)
}

func (s *service) ListPlayers(ctx context.Context, teamID uint) ([]*Player, error) {
	return s.repo.ListPlayers(ctx, teamID)
}

func (s *service) UpdatePlayer(ctx context.Context, ownerID uint, p *Player) error {
	if err := s.requireOwnership(ctx, p.TeamID, ownerID); err != nil {
		return err
	}
	return s.repo.UpdatePlayer(ctx, p)
}

func (s *service) RemovePlayer(ctx context.Context, ownerID, playerID, teamID uint) error {
	if err := s.requireOwnership(ctx, teamID, ownerID); err != nil {
		return err
	}
	return s.repo.RemovePlayer(ctx, playerID, teamID)
}

func (s *service) AddGame(ctx context.Context, ownerID uint, g *Game) (*Game, error) {
	if g.Opponent == "" || g.StartsAt.IsZero() {
		return nil, ErrInvalidGame
	}
	if g.StartsAt.Before(time.Now()) {
		return nil, ErrGameInThePast
	}
	if err := s.requireOwnership(ctx, g.TeamID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.AddGame(ctx, g)
}

func (s *service) ListGames(ctx context.Context, teamID uint, filter GameFilter) ([]*Game, error) {
	return s.repo.ListGames(ctx, teamID, filter)
}

func (s *service) UpdateGame(ctx context.Context, ownerID uint, g *Game) error {
	if err := s.requireOwnership(ctx, g.TeamID, ownerID); err != nil {
		return err
	}
	return s.repo.UpdateGame(ctx, g)
}

func (s *service) RemoveGame(ctx context.Context, ownerID, gameID, teamID uint) error {
	if err := s.requireOwnership(ctx, teamID, ownerID); err != nil {
		return err
	}
	return s.repo.RemoveGame(ctx, gameID, teamID)
}
