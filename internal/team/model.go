package team

import "time"

type Team struct {
	ID        uint    `json:"id"`
	OwnerID   uint    `json:"owner_id"`
	Name      string  `json:"name"`
	Modality  string  `json:"modality"` // futebol, futsal, volei...
	City      string  `json:"city"`
	State     string  `json:"state"`
	BadgeURL  *string `json:"badge_url,omitempty"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Player struct {
	ID       uint    `json:"id"`
	TeamID   uint    `json:"team_id"`
	Name     string  `json:"name"`
	Number   int     `json:"number"`
	Position string  `json:"position"`
	PhotoURL *string `json:"photo_url,omitempty"`
}

type Game struct {
	ID       uint      `json:"id"`
	TeamID   uint      `json:"team_id"`
	Opponent string    `json:"opponent"`
	Venue    string    `json:"venue"`
	StartsAt time.Time `json:"starts_at"`
	Notes    *string   `json:"notes,omitempty"`
}

type GameFilter struct {
	From *time.Time
	To   *time.Time
}
