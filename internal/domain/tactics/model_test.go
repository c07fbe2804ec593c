package tactics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/veller/retrofoot-sub002/internal/domain/player"
)

func rosterFor433(teamID string) (map[string]player.Player, Tactics) {
	roster := map[string]player.Player{}
	add := func(id string, pos player.Position) {
		roster[id] = player.Player{ID: id, TeamID: teamID, LastName: id, Position: pos, BaselineEnergy: 90}
	}

	lineup := []string{"gk1"}
	add("gk1", player.PositionGoalkeeper)
	for i := 1; i <= 4; i++ {
		id := fmt.Sprintf("d%d", i)
		add(id, player.PositionDefender)
		lineup = append(lineup, id)
	}
	for i := 1; i <= 3; i++ {
		id := fmt.Sprintf("m%d", i)
		add(id, player.PositionMidfielder)
		lineup = append(lineup, id)
	}
	for i := 1; i <= 3; i++ {
		id := fmt.Sprintf("f%d", i)
		add(id, player.PositionAttacker)
		lineup = append(lineup, id)
	}
	add("gk2", player.PositionGoalkeeper)
	add("d5", player.PositionDefender)
	add("f4", player.PositionAttacker)

	return roster, Tactics{
		TeamID:      teamID,
		Formation:   Formation433,
		Posture:     PostureBalanced,
		Lineup:      lineup,
		Substitutes: []string{"gk2", "d5", "f4"},
	}
}

func TestValidateAccepts433(t *testing.T) {
	roster, tac := rosterFor433("t1")
	if err := tac.Validate(roster); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]player.Player, *Tactics)
		wantErr error
	}{
		{
			name:    "ten players",
			mutate:  func(_ map[string]player.Player, tac *Tactics) { tac.Lineup = tac.Lineup[:10] },
			wantErr: ErrInvalidLineupSize,
		},
		{
			name: "two goalkeepers",
			mutate: func(r map[string]player.Player, tac *Tactics) {
				tac.Lineup[1] = "gk2"
			},
			wantErr: ErrGoalkeeperCount,
		},
		{
			name:    "unknown formation",
			mutate:  func(_ map[string]player.Player, tac *Tactics) { tac.Formation = "2-2-6" },
			wantErr: ErrUnknownFormation,
		},
		{
			name:    "unknown posture",
			mutate:  func(_ map[string]player.Player, tac *Tactics) { tac.Posture = "reckless" },
			wantErr: ErrUnknownPosture,
		},
		{
			name:    "player off roster",
			mutate:  func(_ map[string]player.Player, tac *Tactics) { tac.Lineup[5] = "ghost" },
			wantErr: ErrUnknownPlayer,
		},
		{
			name:    "duplicate player",
			mutate:  func(_ map[string]player.Player, tac *Tactics) { tac.Lineup[6] = tac.Lineup[5] },
			wantErr: ErrDuplicatePlayer,
		},
		{
			name:    "formation mismatch",
			mutate:  func(_ map[string]player.Player, tac *Tactics) { tac.Formation = Formation442 },
			wantErr: ErrFormationMismatch,
		},
		{
			name: "lineup player on bench",
			mutate: func(_ map[string]player.Player, tac *Tactics) {
				tac.Substitutes = append(tac.Substitutes, tac.Lineup[0])
			},
			wantErr: ErrPlayerOnBothSheets,
		},
		{
			name: "wrong team",
			mutate: func(r map[string]player.Player, tac *Tactics) {
				p := r["d1"]
				p.TeamID = "t2"
				r["d1"] = p
			},
			wantErr: ErrWrongTeamAssignment,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			roster, tac := rosterFor433("t1")
			tc.mutate(roster, &tac)
			if err := tac.Validate(roster); !errors.Is(err, tc.wantErr) {
				t.Fatalf("Validate err=%v want=%v", err, tc.wantErr)
			}
		})
	}
}

func TestFormationShapes(t *testing.T) {
	for _, f := range []Formation{Formation442, Formation433, Formation352, Formation451, Formation532, Formation4231} {
		shape, ok := f.Shape()
		if !ok {
			t.Fatalf("formation %s has no shape", f)
		}
		if shape.Defenders+shape.Midfielders+shape.Attackers != LineupSize-1 {
			t.Fatalf("formation %s outfield count=%d want=%d",
				f, shape.Defenders+shape.Midfielders+shape.Attackers, LineupSize-1)
		}
	}
	if _, ok := Formation("1-1-8").Shape(); ok {
		t.Fatalf("unknown formation must not resolve a shape")
	}
}
