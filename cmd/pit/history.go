package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cyber-pit/internal/console"
	fightrecord "github.com/KirkDiggler/cyber-pit/internal/repositories/fight_record"
)

var (
	historyLimit int
	historyLog   bool
)

var historyCmd = &cobra.Command{
	Use:   "history [username]",
	Short: "Show a player's recent fights",
	Long:  `Show a player's recent fights. Only useful with --redis-addr, since in-memory history ends with the session.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), settings)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		out, err := a.records.ListByUsername(cmd.Context(), fightrecord.ListByUsernameInput{
			Username: args[0],
			Limit:    historyLimit,
		})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(out.Records) == 0 {
			fmt.Fprintf(w, "No fights for %s.\n", args[0])
			return nil
		}
		for _, rec := range out.Records {
			fmt.Fprintln(w, console.FormatRecord(rec))
			if historyLog {
				for _, line := range rec.Log {
					fmt.Fprintf(w, "  %s\n", line)
				}
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "number of fights to show")
	historyCmd.Flags().BoolVar(&historyLog, "log", false, "include the fight commentary")
}
