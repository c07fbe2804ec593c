package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/veller/retrofoot-sub002/internal/domain/aitrace"
	"github.com/veller/retrofoot-sub002/internal/domain/match"
	"github.com/veller/retrofoot-sub002/internal/domain/simulation"
	"github.com/veller/retrofoot-sub002/internal/infrastructure/repository/memory"
	idgen "github.com/veller/retrofoot-sub002/internal/platform/id"
	"github.com/veller/retrofoot-sub002/internal/platform/logging"
	"github.com/veller/retrofoot-sub002/internal/usecase"
)

// simulate plays a single match between two bundled teams and prints
// the timeline. Useful for eyeballing engine behavior without the API.
func main() {
	home := flag.String("home", memory.TeamIDRedhill, "home team id")
	away := flag.String("away", memory.TeamIDNorthgate, "away team id")
	seed := flag.Int64("seed", 0, "rng seed, 0 picks one from the clock")
	homePosture := flag.String("home-posture", "", "home posture (defensive, balanced, attacking)")
	awayPosture := flag.String("away-posture", "", "away posture (defensive, balanced, attacking)")
	showTrace := flag.Bool("trace", false, "print decision trace after the timeline")
	flag.Parse()

	if err := run(*home, *away, *seed, *homePosture, *awayPosture, *showTrace); err != nil {
		fmt.Fprintln(os.Stderr, "simulate:", err)
		os.Exit(1)
	}
}

func run(home, away string, seed int64, homePosture, awayPosture string, showTrace bool) error {
	service := usecase.NewMatchService(
		memory.NewMatchRepository(),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewResultArchive(),
		simulation.DefaultParams(),
		5000,
		idgen.NewRandomGenerator(),
		logging.NewNop(),
	)
	ctx := context.Background()

	input := usecase.CreateMatchInput{
		HomeTeamID:  home,
		AwayTeamID:  away,
		HomePosture: homePosture,
		AwayPosture: awayPosture,
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	input.Seed = &seed

	state, err := service.CreateMatch(ctx, input)
	if err != nil {
		return err
	}
	final, err := service.Complete(ctx, state.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s %d - %d %s (seed %d)\n\n", final.Home.TeamID, final.HomeScore, final.AwayScore, final.Away.TeamID, seed)
	for _, event := range final.Events {
		printEvent(event)
	}

	if showTrace {
		entries, err := service.Trace(ctx, final.ID, aitrace.Filter{})
		if err != nil {
			return err
		}
		fmt.Printf("\ntrace entries: %d\n", len(entries))
		for _, entry := range entries {
			fmt.Printf("  %3d' [%s] %s %s\n", entry.Minute, entry.Type, entry.Team, entry.Outcome)
		}
	}

	return nil
}

func printEvent(event match.Event) {
	line := fmt.Sprintf("%3d' %-14s", event.Minute, event.Type)
	if event.Team != "" {
		line += " " + string(event.Team)
	}
	if event.Description != "" {
		line += "  " + event.Description
	}
	fmt.Println(line)
}
