package cli

import (
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <playerId>",
		Short: "Stream session events for a player",
		Long: `Connect to the websocket gateway as the given player and print every
event the server sends.

Events include:
  - matchmaking:waiting: still queued, no match yet
  - matchmaking:matched: a match formed, with the room snapshot
  - roulette:diceResult: reply to a dice draw
  - game:goodDiceUpdate: remaining good dice counts changed
  - error: a request was rejected

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0])
		},
	}

	return cmd
}

func runWatch(playerID string) error {
	ctx, cancel := interruptContext()
	defer cancel()

	session, err := dialSession(playerID)
	if err != nil {
		return err
	}
	defer session.Close()
	closeOnDone(ctx, session)

	out := NewOutput(cfg.Output)
	out.PrintMessage("Watching events for " + playerID)

	for {
		env, err := session.Next()
		if err != nil {
			if ctx.Err() != nil {
				out.PrintMessage("Disconnected")
				return nil
			}
			return err
		}
		out.PrintEvent(env.Event, env.Data)
	}
}
