package team

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"arenapix-be/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrGameNotFound   = errors.New("game not found")
)

type Repository interface {
	CreateTeam(ctx context.Context, t *Team) (*Team, error)
	GetTeam(ctx context.Context, teamID uint) (*Team, error)
	ListTeamsByOwner(ctx context.Context, ownerID uint) ([]*Team, error)
	UpdateTeam(ctx context.Context, t *Team) error
	DeleteTeam(ctx context.Context, teamID, ownerID uint) error

	AddPlayer(ctx context.Context, p *Player) (*Player, error)
	ListPlayers(ctx context.Context, teamID uint) ([]*Player, error)
	UpdatePlayer(ctx context.Context, p *Player) error
	RemovePlayer(ctx context.Context, playerID, teamID uint) error

	AddGame(ctx context.Context, g *Game) (*Game, error)
	ListGames(ctx context.Context, teamID uint, filter GameFilter) ([]*Game, error)
	UpdateGame(ctx context.Context, g *Game) error
	RemoveGame(ctx context.Context, gameID, teamID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTeam(ctx context.Context, t *Team) (*Team, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO teams (owner_id, name, modality, city, state, badge_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, t.OwnerID, t.Name, t.Modality, t.City, t.State, t.BadgeURL).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert team", zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (r *repository) GetTeam(ctx context.Context, teamID uint) (*Team, error) {
	var t Team
	err := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, modality, city, state, badge_url, created_at, updated_at
		FROM teams WHERE id = $1
	`, teamID).Scan(&t.ID, &t.OwnerID, &t.Name, &t.Modality, &t.City, &t.State, &t.BadgeURL, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) ListTeamsByOwner(ctx context.Context, ownerID uint) ([]*Team, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, modality, city, state, badge_url, created_at, updated_at
		FROM teams WHERE owner_id = $1 ORDER BY name
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Name, &t.Modality, &t.City, &t.State, &t.BadgeURL, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, &t)
	}
	return teams, rows.Err()
}

func (r *repository) UpdateTeam(ctx context.Context, t *Team) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE teams
		SET name = $1, modality = $2, city = $3, state = $4, badge_url = $5, updated_at = NOW()
		WHERE id = $6 AND owner_id = $7
	`, t.Name, t.Modality, t.City, t.State, t.BadgeURL, t.ID, t.OwnerID)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrTeamNotFound)
}

func (r *repository) DeleteTeam(ctx context.Context, teamID, ownerID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM teams WHERE id = $1 AND owner_id = $2
	`, teamID, ownerID)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrTeamNotFound)
}

func (r *repository) AddPlayer(ctx context.Context, p *Player) (*Player, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO players (team_id, name, number, position, photo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, p.TeamID, p.Name, p.Number, p.Position, p.PhotoURL).Scan(&p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) ListPlayers(ctx context.Context, teamID uint) ([]*Player, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, team_id, name, number, position, photo_url
		FROM players WHERE team_id = $1 ORDER BY number
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []*Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.TeamID, &p.Name, &p.Number, &p.Position, &p.PhotoURL); err != nil {
			return nil, err
		}
		players = append(players, &p)
	}
	return players, rows.Err()
}

func (r *repository) UpdatePlayer(ctx context.Context, p *Player) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE players
		SET name = $1, number = $2, position = $3, photo_url = $4
		WHERE id = $5 AND team_id = $6
	`, p.Name, p.Number, p.Position, p.PhotoURL, p.ID, p.TeamID)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrPlayerNotFound)
}

func (r *repository) RemovePlayer(ctx context.Context, playerID, teamID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM players WHERE id = $1 AND team_id = $2
	`, playerID, teamID)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrPlayerNotFound)
}

func (r *repository) AddGame(ctx context.Context, g *Game) (*Game, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO games (team_id, opponent, venue, starts_at, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, g.TeamID, g.Opponent, g.Venue, g.StartsAt, g.Notes).Scan(&g.ID)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *repository) ListGames(ctx context.Context, teamID uint, filter GameFilter) ([]*Game, error) {
	query := `
		SELECT id, team_id, opponent, venue, starts_at, notes
		FROM games WHERE team_id = $1
	`
	args := []any{teamID}
	argIndex := 2

	if filter.From != nil {
		query += fmt.Sprintf(" AND starts_at >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND starts_at <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}
	query += " ORDER BY starts_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*Game
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.ID, &g.TeamID, &g.Opponent, &g.Venue, &g.StartsAt, &g.Notes); err != nil {
			return nil, err
		}
		games = append(games, &g)
	}
	return games, rows.Err()
}

func (r *repository) UpdateGame(ctx context.Context, g *Game) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE games
		SET opponent = $1, venue = $2, starts_at = $3, notes = $4
		WHERE id = $5 AND team_id = $6
	`, g.Opponent, g.Venue, g.StartsAt, g.Notes, g.ID, g.TeamID)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrGameNotFound)
}

func (r *repository) RemoveGame(ctx context.Context, gameID, teamID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM games WHERE id = $1 AND team_id = $2
	`, gameID, teamID)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrGameNotFound)
}

func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
