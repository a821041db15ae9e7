package models

import (
	"time"
)

// RosterEntry is one player row of the roster store. A player is unique per
// real team; the same name may appear under another team.
type RosterEntry struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Team     string `gorm:"not null;uniqueIndex:idx_roster_team_player" json:"team"`
	Role     string `gorm:"not null" json:"role"` // "WK", "BAT", "ALL", "BOWL"
	Player   string `gorm:"not null;uniqueIndex:idx_roster_team_player" json:"player"`
	Active   bool   `gorm:"not null" json:"active"`
	Position int    `gorm:"not null;index" json:"position"` // roster order, first import wins

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (RosterEntry) TableName() string {
	return "roster_entries"
}
