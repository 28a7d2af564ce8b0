package cli

import (
	"github.com/spf13/cobra"
)

func newDailyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Play today's word",
	}

	cmd.AddCommand(newDailyShowCmd())
	cmd.AddCommand(newDailyGuessCmd())

	return cmd
}

func newDailyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show today's game, starting it if needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Get("/api/v1/daily", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newDailyGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <word>",
		Short: "Guess a word against today's game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"guess": args[0],
			}

			var result GuessResult
			if err := client.Post("/api/v1/daily/guess", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
