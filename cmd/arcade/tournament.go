package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gor-arcade/internal/tournament"
)

var tournamentCmd = &cobra.Command{
	Use:   "tournament",
	Short: "Inspect, enter or reset tournaments",
	Long: `Every game runs one three-day tournament at a time. An ended
tournament is replaced by a fresh one the next time it is looked at.

Examples:
  arcade tournament status tetris
  arcade tournament enter snake --wallet 9xQe...
  arcade tournament reset minesweeper`,
}

var tournamentStatusCmd = &cobra.Command{
	Use:   "status <game>",
	Short: "Show the running tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withTournaments(func(ctx context.Context, svc *tournament.Service) error {
			t, err := svc.Current(ctx, args[0])
			if err != nil {
				return err
			}
			printTournament(t, svc)
			return nil
		})
	},
}

var tournamentEnterCmd = &cobra.Command{
	Use:   "enter <game>",
	Short: "Record an entry fee payment",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withTournaments(func(ctx context.Context, svc *tournament.Service) error {
			t, err := svc.Enter(ctx, args[0], flagWallet)
			if err != nil {
				return err
			}
			fmt.Printf("Entry fee of %s %s added to prize pool\n\n", t.EntryFee, tournament.Currency)
			printTournament(t, svc)
			return nil
		})
	},
}

var tournamentResetCmd = &cobra.Command{
	Use:   "reset <game>",
	Short: "End the running tournament and start a new one",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withTournaments(func(ctx context.Context, svc *tournament.Service) error {
			old, err := svc.Current(ctx, args[0])
			if err != nil {
				return err
			}
			t, err := svc.Reset(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Closed tournament %s: pool %s %s, winner share %s %s\n\n",
				old.ID, old.PrizePool, tournament.Currency, old.Payout(), tournament.Currency)
			printTournament(t, svc)
			return nil
		})
	},
}

func init() {
	tournamentEnterCmd.Flags().StringVar(&flagWallet, "wallet", "", "Paying wallet address")
	tournamentCmd.AddCommand(tournamentStatusCmd, tournamentEnterCmd, tournamentResetCmd)
}

func withTournaments(fn func(context.Context, *tournament.Service) error) error {
	ctx := context.Background()
	b, err := openBackend(ctx, os.Stderr, "arcade")
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer b.Close()
	return fn(ctx, b.tournaments)
}

func printTournament(t tournament.Tournament, svc *tournament.Service) {
	fmt.Printf("Tournament   %s\n", t.ID)
	fmt.Printf("Game         %s\n", t.Game)
	fmt.Printf("Entry fee    %s %s\n", t.EntryFee, tournament.Currency)
	fmt.Printf("Prize pool   %s %s\n", t.PrizePool, tournament.Currency)
	fmt.Printf("Participants %d\n", t.Participants)
	fmt.Printf("Ends         %s (%s)\n", t.EndsAt.Local().Format("2006-01-02 15:04"), tournament.Status(t, svc.Now()))
}
