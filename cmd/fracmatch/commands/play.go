package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DoyleJ11/fracmatch/internal/engine"
	"github.com/DoyleJ11/fracmatch/internal/random"
	"github.com/DoyleJ11/fracmatch/internal/tui"
)

func playCmd() *cobra.Command {
	var tier string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := engine.ParseTier(tier)
			if !ok {
				return fmt.Errorf("%w: %q", engine.ErrUnknownTier, tier)
			}
			seed, err := random.SeedOr(cfg.Seed)
			if err != nil {
				return err
			}
			game := engine.NewGame(t.EntryLevel(), engine.NewRand(seed))
			return tui.Run(game, cfg.SuccessDelay, cfg.FeedbackDelay)
		},
	}
	cmd.Flags().StringVar(&tier, "tier", string(engine.TierEasy), "starting difficulty: easy, medium or hard")
	return cmd
}
