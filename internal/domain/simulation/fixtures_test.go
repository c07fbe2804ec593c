package simulation

import (
	"fmt"

	"github.com/veller/retrofoot-sub002/internal/domain/player"
	"github.com/veller/retrofoot-sub002/internal/domain/tactics"
)

// testSquad builds an 18-man squad shaped for 4-3-3: the first eleven
// ids fill the lineup, the rest the bench. Attributes vary by slot so
// weighted draws have real spread.
func testSquad(teamID, prefix string) ([]player.Player, tactics.Tactics) {
	type slot struct {
		pos   player.Position
		count int
	}
	slots := []slot{
		{player.PositionGoalkeeper, 1},
		{player.PositionDefender, 4},
		{player.PositionMidfielder, 3},
		{player.PositionAttacker, 3},
		// bench
		{player.PositionGoalkeeper, 1},
		{player.PositionDefender, 2},
		{player.PositionMidfielder, 2},
		{player.PositionAttacker, 2},
	}

	var squad []player.Player
	i := 0
	for _, s := range slots {
		for n := 0; n < s.count; n++ {
			attr := 55 + (i*7)%30
			p := player.Player{
				ID:       fmt.Sprintf("%s-%02d", prefix, i),
				TeamID:   teamID,
				LastName: fmt.Sprintf("%s %02d", prefix, i),
				Position: s.pos,
				Attributes: player.Attributes{
					Aggression: 30 + (i*11)%40,
					Composure:  attr,
					Stamina:    60 + (i*5)%30,
					Technical:  attr,
					Finishing:  attr,
					Defending:  attr,
				},
				BaselineEnergy: 96,
			}
			if s.pos == player.PositionAttacker {
				p.Attributes.Finishing = 70 + (i*3)%20
			}
			squad = append(squad, p)
			i++
		}
	}

	ids := make([]string, len(squad))
	for j, p := range squad {
		ids[j] = p.ID
	}
	tac := tactics.Tactics{
		TeamID:      teamID,
		Formation:   tactics.Formation433,
		Posture:     tactics.PostureBalanced,
		Lineup:      ids[:11],
		Substitutes: ids[11:],
	}
	return squad, tac
}

func testConfig(seed int64) Config {
	homeSquad, homeTac := testSquad("home-fc", "h")
	awaySquad, awayTac := testSquad("away-fc", "a")

	roster := make(map[string]player.Player, len(homeSquad)+len(awaySquad))
	for _, p := range homeSquad {
		roster[p.ID] = p
	}
	for _, p := range awaySquad {
		roster[p.ID] = p
	}

	return Config{
		MatchID: fmt.Sprintf("m-%d", seed),
		Seed:    seed,
		Home:    homeTac,
		Away:    awayTac,
		Roster:  roster,
		Params:  DefaultParams(),
	}
}
