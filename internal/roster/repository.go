package roster

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stitts-dev/xi-generator/internal/models"
	"github.com/stitts-dev/xi-generator/pkg/database"
)

var ErrPlayerNotFound = errors.New("player not found in roster")

// Repository persists rosters so the server can edit active flags between
// generation requests.
type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the roster table.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&models.RosterEntry{}); err != nil {
		return fmt.Errorf("failed to migrate roster table: %w", err)
	}
	return nil
}

// Import upserts entries by team and player and returns the number of distinct
// rows written. Existing rows take the new role and active flag but keep their
// original roster position.
func (r *Repository) Import(ctx context.Context, entries []Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	var imported int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int
		if err := tx.Model(&models.RosterEntry{}).
			Select("COALESCE(MAX(position), -1) + 1").
			Scan(&next).Error; err != nil {
			return fmt.Errorf("failed to read roster position: %w", err)
		}

		// a row may only be upserted once per statement; later duplicates win
		rows := make([]models.RosterEntry, 0, len(entries))
		at := make(map[[2]string]int, len(entries))
		for _, e := range entries {
			row := models.RosterEntry{
				Team:     e.Team,
				Role:     e.Role,
				Player:   e.Player,
				Active:   e.Active,
				Position: next + len(rows),
			}
			key := [2]string{e.Team, e.Player}
			if i, dup := at[key]; dup {
				row.Position = rows[i].Position
				rows[i] = row
				continue
			}
			at[key] = len(rows)
			rows = append(rows, row)
		}
		imported = len(rows)

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team"}, {Name: "player"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "active", "updated_at"}),
		}).CreateInBatches(rows, 200).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import roster: %w", err)
	}
	return imported, nil
}

// Teams lists teams with at least one active player in first-imported order.
func (r *Repository) Teams(ctx context.Context) ([]string, error) {
	var teams []string
	err := r.db.WithContext(ctx).Model(&models.RosterEntry{}).
		Select("team").
		Where("active = ?", true).
		Group("team").
		Order("MIN(position)").
		Pluck("team", &teams).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// ListTeam returns every row of a team, active or not, in roster order.
func (r *Repository) ListTeam(ctx context.Context, team string) ([]Entry, error) {
	var rows []models.RosterEntry
	err := r.db.WithContext(ctx).
		Where("team = ?", team).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list team %s: %w", team, err)
	}
	return toEntries(rows), nil
}

// SetActive toggles whether a player is eligible for selection.
func (r *Repository) SetActive(ctx context.Context, team, player string, active bool) error {
	result := r.db.WithContext(ctx).Model(&models.RosterEntry{}).
		Where("team = ? AND player = ?", team, player).
		Update("active", active)
	if result.Error != nil {
		return fmt.Errorf("failed to update %s/%s: %w", team, player, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s/%s", ErrPlayerNotFound, team, player)
	}
	return nil
}

// Load returns the rows of both teams in roster order, ready for BuildPool.
func (r *Repository) Load(ctx context.Context, team1, team2 string) ([]Entry, error) {
	var rows []models.RosterEntry
	err := r.db.WithContext(ctx).
		Where("team IN ?", []string{team1, team2}).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	return toEntries(rows), nil
}

func toEntries(rows []models.RosterEntry) []Entry {
	entries := make([]Entry, len(rows))
	for i, row := range rows {
		entries[i] = Entry{
			Team:   row.Team,
			Role:   row.Role,
			Player: row.Player,
			Active: row.Active,
		}
	}
	return entries
}
