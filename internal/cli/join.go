package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newJoinCmd() *cobra.Command {
	var (
		nickname string
		dice     string
		follow   bool
	)

	cmd := &cobra.Command{
		Use:   "join <playerId>",
		Short: "Join the matchmaking queue",
		Long: `Connect to the websocket gateway, register, and join the matchmaking
queue. Events are printed as they arrive; the command exits once a match
forms unless --follow is set.

The dice contribution names good dice kinds with counts summing to four,
for example:

  dicearena join alice --nickname Alice --dice 456Dice=2,WildDice=2

Press Ctrl+C to leave the queue and disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := parseDiceRecord(dice)
			if err != nil {
				return err
			}
			if nickname == "" {
				nickname = args[0]
			}
			return runJoin(args[0], nickname, record, follow)
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "Display name (defaults to the player id)")
	cmd.Flags().StringVar(&dice, "dice", "456Dice=1,OneMoreDice=1,HighDice=1,WildDice=1", "Good dice contribution as kind=count pairs")
	cmd.Flags().BoolVar(&follow, "follow", false, "Keep streaming events after the match forms")

	return cmd
}

func runJoin(playerID, nickname string, record map[string]int, follow bool) error {
	ctx, cancel := interruptContext()
	defer cancel()

	session, err := dialSession(playerID)
	if err != nil {
		return err
	}
	defer session.Close()
	closeOnDone(ctx, session)

	err = session.Send("matchmaking:joinQueue", map[string]any{
		"playerId":       playerID,
		"nickname":       nickname,
		"goodDiceRecord": record,
	})
	if err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
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

		if env.Event == "matchmaking:matched" && !follow {
			return nil
		}
	}
}

// parseDiceRecord parses "kind=count,kind=count" into a contribution map
func parseDiceRecord(s string) (map[string]int, error) {
	record := make(map[string]int)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kind, countStr, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid dice pair %q, expected kind=count", pair)
		}
		count, err := strconv.Atoi(countStr)
		if err != nil {
			return nil, fmt.Errorf("invalid count in %q: %w", pair, err)
		}
		record[strings.TrimSpace(kind)] = count
	}
	return record, nil
}
