package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stitts-dev/xi-generator/internal/roster"
)

func newTeamsCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List teams with active players in the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := roster.LoadFile(v.GetString("ROSTER_PATH"))
			if err != nil {
				return err
			}
			for _, team := range roster.Teams(entries) {
				fmt.Fprintln(cmd.OutOrStdout(), team)
			}
			return nil
		},
	}
}
