package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/stitts-dev/xi-generator/internal/lineup"
)

// Header returns the CSV header for a batch between the two teams: P1..P11,
// Captain, Vice, Formation, then one count column per real team.
func Header(teams [2]string) []string {
	header := make([]string, 0, lineup.DefaultLineupSize+5)
	for i := 1; i <= lineup.DefaultLineupSize; i++ {
		header = append(header, fmt.Sprintf("P%d", i))
	}
	return append(header, "Captain", "Vice", "Formation", teams[0], teams[1])
}

// Row flattens one record in Header order.
func Row(r lineup.Record) []string {
	row := make([]string, 0, len(r.Players)+5)
	row = append(row, r.Players...)
	row = append(row, r.Captain, r.ViceCaptain, r.Formation)
	for _, tc := range r.TeamCounts {
		row = append(row, strconv.Itoa(tc.Count))
	}
	return row
}

// WriteCSV writes the batch, one lineup per row, in generation order.
func WriteCSV(w io.Writer, batch *lineup.Batch) error {
	if batch == nil || len(batch.Lineups) == 0 {
		return fmt.Errorf("no lineups to export")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(Header(batch.Teams)); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, r := range batch.Records() {
		if err := writer.Write(Row(r)); err != nil {
			return fmt.Errorf("failed to write lineup %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

// CSV renders the batch into memory.
func CSV(batch *lineup.Batch) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, batch); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName suggests a download name for the batch.
func FileName(batch *lineup.Batch, now time.Time) string {
	return fmt.Sprintf("xi_%s_vs_%s_%s.csv", batch.Teams[0], batch.Teams[1], now.Format("20060102_150405"))
}
