package cli

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"
)

func newArenaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arena",
		Short: "Create and play arena competitions",
	}

	cmd.AddCommand(newArenaCreateCmd())
	cmd.AddCommand(newArenaGetCmd())
	cmd.AddCommand(newArenaJoinCmd())
	cmd.AddCommand(newArenaKickCmd())
	cmd.AddCommand(newArenaStandingsCmd())
	cmd.AddCommand(newArenaWordCmd())
	cmd.AddCommand(newArenaGuessCmd())

	return cmd
}

func newArenaCreateCmd() *cobra.Command {
	var size, words, duration int
	var start string
	var suddenDeath, hardMode bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an arena",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"audience_size":      size,
				"word_count":         words,
				"duration_minutes":   duration,
				"sudden_death":       suddenDeath,
				"hard_mode_required": hardMode,
			}

			if start != "" {
				ts, err := time.Parse(time.RFC3339, start)
				if err != nil {
					return fmt.Errorf("invalid --start, want RFC3339: %w", err)
				}
				req["scheduled_start"] = ts
			}

			var result Arena
			if err := client.Post("/api/v1/arenas", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 2, "Number of player slots")
	cmd.Flags().IntVar(&words, "words", 3, "Number of words in the arena")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes, 0 for open-ended")
	cmd.Flags().StringVar(&start, "start", "", "Scheduled start (RFC3339), empty starts on first join")
	cmd.Flags().BoolVar(&suddenDeath, "sudden-death", false, "Enable sudden death (head-to-head only)")
	cmd.Flags().BoolVar(&hardMode, "hard-mode", false, "Require hard mode on all arena games")

	return cmd
}

func newArenaGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an arena",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Arena
			if err := client.Get(arenaPath(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newArenaJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <id>",
		Short: "Join an arena",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Arena
			if err := client.Post(arenaPath(args[0])+"/join", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newArenaKickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kick <id> <provider> <user_id>",
		Short: "Kick a member (creator only)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"provider": args[1],
				"user_id":  args[2],
			}

			var result Arena
			if err := client.Post(arenaPath(args[0])+"/kick", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newArenaStandingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings <id>",
		Short: "Show the arena leaderboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result StandingsResult
			if err := client.Get(arenaPath(args[0])+"/standings", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newArenaWordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "word <id> <index>",
		Short: "Show your game for a word in the arena, starting it if needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Get(arenaWordPath(args[0], args[1]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newArenaGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <id> <index> <word>",
		Short: "Guess a word in the arena",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"guess": args[2],
			}

			var result GuessResult
			if err := client.Post(arenaWordPath(args[0], args[1])+"/guess", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func arenaPath(id string) string {
	return fmt.Sprintf("/api/v1/arenas/%s", url.PathEscape(id))
}

func arenaWordPath(id, index string) string {
	return fmt.Sprintf("%s/words/%s", arenaPath(id), url.PathEscape(index))
}
