package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/stitts-dev/xi-generator/internal/lineup"
)

// WriteText renders the batch for a terminal: a numbered player list per
// lineup with captaincy marks, team counts and formation.
func WriteText(w io.Writer, batch *lineup.Batch) error {
	var sb strings.Builder
	for i, l := range batch.Lineups {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Team %d\n", i+1)
		for n, p := range l.Players {
			mark := ""
			switch p.Name {
			case l.Captain.Name:
				mark = " (C)"
			case l.ViceCaptain.Name:
				mark = " (VC)"
			}
			fmt.Fprintf(&sb, "%3d. %s [%s, %s]%s\n", n+1, p.Name, p.Role, p.RealTeam, mark)
		}
		fmt.Fprintf(&sb, "     Counts: %d-%d (%s-%s)\n", l.TeamCounts[0], l.TeamCounts[1], batch.Teams[0], batch.Teams[1])
		fmt.Fprintf(&sb, "     Formation: %s (WK-BAT-ALL-BOWL)\n", l.FormationLabel())
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
