package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Create and play custom games",
	}

	cmd.AddCommand(newGameCustomCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameGuessCmd())
	cmd.AddCommand(newGamePopCmd())
	cmd.AddCommand(newGameResetCmd())

	return cmd
}

func newGameCustomCmd() *cobra.Command {
	var secret, message string
	var allowRedo bool

	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Create a custom game with a chosen secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"secret":     secret,
				"message":    message,
				"allow_redo": allowRedo,
			}

			var result Game
			if err := client.Post("/api/v1/games/custom", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "The secret word")
	cmd.Flags().StringVar(&message, "message", "", "Message shown to players")
	cmd.Flags().BoolVar(&allowRedo, "redo", false, "Allow pop/reset on this game")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Show a game by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Get(gamePath(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <key> <word>",
		Short: "Guess a word against a game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"guess": args[1],
			}

			var result GuessResult
			if err := client.Post(gamePath(args[0])+"/guess", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGamePopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pop <key>",
		Short: "Remove the most recent guess from a redo-enabled game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Post(gamePath(args[0])+"/pop", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <key>",
		Short: "Clear all guesses from a redo-enabled game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Post(gamePath(args[0])+"/reset", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func gamePath(key string) string {
	return fmt.Sprintf("/api/v1/games/%s", url.PathEscape(key))
}
