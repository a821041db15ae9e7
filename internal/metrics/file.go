package metrics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidFile = errors.New("invalid weights file")

// File is the content of a weights file.
//
//	mode: dream_team_pct
//	key_players: [Kohli, Bumrah]
//	weights:
//	  Kohli: 80
//	  Bumrah: 65
type File struct {
	Mode       Mode               `yaml:"mode" json:"mode"`
	KeyPlayers []string           `yaml:"key_players" json:"key_players,omitempty"`
	Weights    map[string]float64 `yaml:"weights" json:"weights"`
}

// LoadFile reads a YAML (.yaml, .yml) or CSV (.csv) weights file.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open weights file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	case ".csv":
		return ParseCSV(f)
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrInvalidFile, filepath.Ext(path))
	}
}

// ParseYAML decodes a weights file. A bare player: value mapping is accepted
// as well.
func ParseYAML(r io.Reader) (*File, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{Mode: DefaultMode, Weights: map[string]float64{}}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	var file File
	if isStructured(&node) {
		if err := node.Decode(&file); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
		}
	} else if err := node.Decode(&file.Weights); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	mode, err := ParseMode(string(file.Mode))
	if err != nil {
		return nil, err
	}
	file.Mode = mode
	if file.Weights == nil {
		file.Weights = map[string]float64{}
	}
	return &file, nil
}

// isStructured reports whether the document uses the File layout rather than
// a bare player mapping.
func isStructured(doc *yaml.Node) bool {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return false
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i < len(root.Content); i += 2 {
		switch root.Content[i].Value {
		case "mode", "weights", "key_players":
			return true
		}
	}
	return false
}

// ParseCSV reads player,value rows. A header row is optional; the mode is
// always DefaultMode.
func ParseCSV(r io.Reader) (*File, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = 2

	file := &File{Mode: DefaultMode, Weights: map[string]float64{}}
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
		}
		name := strings.TrimSpace(record[0])
		value, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("%w: line %d: %q is not a number", ErrInvalidFile, line, record[1])
		}
		if _, dup := file.Weights[name]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate player %q", ErrInvalidFile, line, name)
		}
		file.Weights[name] = value
	}
	return file, nil
}
