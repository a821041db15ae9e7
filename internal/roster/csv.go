package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	ErrMissingColumn = errors.New("roster is missing a required column")
	ErrInvalidRow    = errors.New("invalid roster row")
)

// Entry is one roster row. Role is kept as written; it is only interpreted
// when a pool is built.
type Entry struct {
	Team   string `json:"team"`
	Role   string `json:"role"`
	Player string `json:"player"`
	Active bool   `json:"active"`
}

var requiredColumns = []string{"team", "role", "player"}

// LoadFile reads a roster CSV from disk.
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster: %w", err)
	}
	defer f.Close()

	return ParseCSV(f)
}

// ParseCSV reads a roster with a header row naming at least team, role and
// player. Columns may come in any order. Without an active column every row
// is active.
func ParseCSV(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty roster", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read roster header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	activeCol, hasActive := columns["active"]

	var entries []Entry
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read roster line %d: %w", line, err)
		}

		field := func(i int) string {
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		entry := Entry{
			Team:   field(columns["team"]),
			Role:   field(columns["role"]),
			Player: field(columns["player"]),
			Active: true,
		}
		if entry.Team == "" && entry.Role == "" && entry.Player == "" {
			continue
		}
		if entry.Team == "" || entry.Player == "" {
			return nil, fmt.Errorf("%w: line %d needs both team and player", ErrInvalidRow, line)
		}
		if hasActive {
			active, err := ParseActive(field(activeCol))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidRow, line, err)
			}
			entry.Active = active
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// ParseActive accepts the usual spreadsheet spellings of a boolean. An empty
// cell counts as active.
func ParseActive(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	active, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("unrecognised active flag %q", s)
	}
	return active, nil
}

// WriteCSV writes entries with the team,role,player,active header.
func WriteCSV(w io.Writer, entries []Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"team", "role", "player", "active"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := writer.Write([]string{e.Team, e.Role, e.Player, strconv.FormatBool(e.Active)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
