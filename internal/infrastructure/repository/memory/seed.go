package memory

import (
	"fmt"

	"github.com/veller/retrofoot-sub002/internal/domain/player"
	"github.com/veller/retrofoot-sub002/internal/domain/team"
)

const (
	TeamIDRedhill    = "redhill-rovers"
	TeamIDNorthgate  = "northgate-united"
	TeamIDEastbourne = "eastbourne-athletic"
	TeamIDWhitefield = "whitefield-town"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDRedhill, Name: "Redhill Rovers", Short: "RHR"},
		{ID: TeamIDNorthgate, Name: "Northgate United", Short: "NGU"},
		{ID: TeamIDEastbourne, Name: "Eastbourne Athletic", Short: "EBA"},
		{ID: TeamIDWhitefield, Name: "Whitefield Town", Short: "WFT"},
	}
}

// seedRow is one squad member before team assignment. Attribute order:
// aggression, composure, stamina, technical, finishing, defending.
type seedRow struct {
	first, last string
	pos         player.Position
	attrs       [6]int
	energy      float64
}

func buildSquad(teamID string, rows []seedRow) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for i, row := range rows {
		out = append(out, player.Player{
			ID:        fmt.Sprintf("%s-%02d", teamID, i+1),
			TeamID:    teamID,
			FirstName: row.first,
			LastName:  row.last,
			Position:  row.pos,
			Attributes: player.Attributes{
				Aggression: row.attrs[0],
				Composure:  row.attrs[1],
				Stamina:    row.attrs[2],
				Technical:  row.attrs[3],
				Finishing:  row.attrs[4],
				Defending:  row.attrs[5],
			},
			BaselineEnergy: row.energy,
		})
	}
	return out
}

func SeedPlayers() []player.Player {
	var players []player.Player
	players = append(players, buildSquad(TeamIDRedhill, []seedRow{
		{"Tomas", "Brandt", player.PositionGoalkeeper, [6]int{22, 80, 60, 55, 5, 45}, 97},
		{"Oliver", "Marsh", player.PositionDefender, [6]int{62, 68, 76, 58, 22, 81}, 95},
		{"Ruben", "Castillo", player.PositionDefender, [6]int{70, 63, 78, 54, 18, 84}, 96},
		{"Jakob", "Lindqvist", player.PositionDefender, [6]int{55, 72, 74, 61, 25, 79}, 94},
		{"Danny", "Okoro", player.PositionDefender, [6]int{66, 60, 82, 57, 30, 77}, 97},
		{"Mateo", "Ferrara", player.PositionMidfielder, [6]int{48, 77, 80, 81, 52, 58}, 96},
		{"Simon", "Vidal", player.PositionMidfielder, [6]int{52, 74, 84, 78, 48, 62}, 98},
		{"Aaron", "Kelleher", player.PositionMidfielder, [6]int{58, 70, 79, 74, 55, 66}, 95},
		{"Nico", "Baumann", player.PositionAttacker, [6]int{45, 79, 74, 80, 84, 30}, 96},
		{"Iker", "Dominguez", player.PositionAttacker, [6]int{50, 76, 72, 77, 82, 28}, 95},
		{"Felix", "Andersen", player.PositionAttacker, [6]int{42, 81, 70, 82, 86, 25}, 94},
		{"Petr", "Havel", player.PositionGoalkeeper, [6]int{25, 72, 58, 50, 5, 40}, 98},
		{"Lucas", "Mbemba", player.PositionDefender, [6]int{60, 64, 80, 55, 20, 75}, 99},
		{"Adam", "Szalai", player.PositionDefender, [6]int{58, 61, 77, 52, 22, 72}, 98},
		{"Yannick", "Traore", player.PositionMidfielder, [6]int{50, 68, 82, 72, 45, 60}, 99},
		{"Dario", "Kovac", player.PositionMidfielder, [6]int{54, 66, 78, 70, 50, 58}, 97},
		{"Emil", "Johansson", player.PositionAttacker, [6]int{44, 73, 76, 74, 78, 26}, 99},
		{"Kofi", "Asante", player.PositionAttacker, [6]int{48, 70, 80, 71, 76, 24}, 98},
	})...)
	players = append(players, buildSquad(TeamIDNorthgate, []seedRow{
		{"Marco", "Deluca", player.PositionGoalkeeper, [6]int{20, 82, 62, 56, 5, 48}, 96},
		{"Henrik", "Olsen", player.PositionDefender, [6]int{64, 70, 75, 60, 24, 83}, 95},
		{"Bram", "Vermeer", player.PositionDefender, [6]int{68, 65, 79, 56, 20, 85}, 97},
		{"Callum", "Doyle", player.PositionDefender, [6]int{58, 69, 76, 62, 26, 78}, 94},
		{"Sergei", "Volkov", player.PositionDefender, [6]int{72, 58, 81, 55, 28, 80}, 96},
		{"Luka", "Horvat", player.PositionMidfielder, [6]int{46, 78, 81, 83, 54, 56}, 97},
		{"Pablo", "Reyes", player.PositionMidfielder, [6]int{50, 75, 83, 79, 50, 60}, 96},
		{"Jonas", "Weber", player.PositionMidfielder, [6]int{56, 71, 78, 76, 57, 64}, 95},
		{"Andre", "Silva", player.PositionAttacker, [6]int{47, 80, 73, 81, 85, 28}, 95},
		{"Tariq", "Hassan", player.PositionAttacker, [6]int{52, 74, 75, 78, 81, 30}, 96},
		{"Viktor", "Nagy", player.PositionAttacker, [6]int{40, 82, 71, 83, 87, 22}, 94},
		{"Sam", "Whitlow", player.PositionGoalkeeper, [6]int{24, 70, 60, 48, 5, 42}, 99},
		{"Ousmane", "Diallo", player.PositionDefender, [6]int{62, 62, 82, 54, 18, 76}, 98},
		{"Piotr", "Zielak", player.PositionDefender, [6]int{56, 63, 75, 53, 24, 73}, 97},
		{"Renato", "Gomes", player.PositionMidfielder, [6]int{48, 69, 80, 73, 46, 62}, 99},
		{"Tim", "Vandenberg", player.PositionMidfielder, [6]int{52, 67, 79, 71, 52, 59}, 98},
		{"Leon", "Fischer", player.PositionAttacker, [6]int{46, 72, 77, 75, 79, 27}, 98},
		{"Moussa", "Keita", player.PositionAttacker, [6]int{50, 71, 81, 72, 77, 25}, 99},
	})...)
	players = append(players, buildSquad(TeamIDEastbourne, []seedRow{
		{"Ivan", "Petrov", player.PositionGoalkeeper, [6]int{23, 78, 61, 52, 5, 44}, 96},
		{"Gareth", "Llewellyn", player.PositionDefender, [6]int{63, 66, 77, 57, 21, 80}, 95},
		{"Nils", "Bergstrom", player.PositionDefender, [6]int{69, 62, 76, 53, 19, 82}, 96},
		{"Diego", "Morales", player.PositionDefender, [6]int{57, 70, 75, 60, 27, 77}, 94},
		{"Ante", "Brkic", player.PositionDefender, [6]int{67, 59, 80, 56, 29, 78}, 97},
		{"Karim", "Benali", player.PositionMidfielder, [6]int{47, 76, 79, 80, 53, 57}, 96},
		{"Stefan", "Molnar", player.PositionMidfielder, [6]int{51, 73, 82, 77, 49, 61}, 97},
		{"Robbie", "Quinn", player.PositionMidfielder, [6]int{57, 69, 77, 73, 56, 65}, 95},
		{"Joao", "Teixeira", player.PositionAttacker, [6]int{46, 78, 72, 79, 83, 29}, 95},
		{"Samir", "Cherif", player.PositionAttacker, [6]int{51, 75, 74, 76, 80, 27}, 96},
		{"Marius", "Eide", player.PositionAttacker, [6]int{43, 80, 69, 81, 85, 24}, 94},
		{"Brett", "Hollis", player.PositionGoalkeeper, [6]int{26, 71, 59, 49, 5, 41}, 98},
		{"Cheikh", "Ndiaye", player.PositionDefender, [6]int{61, 63, 81, 53, 19, 74}, 99},
		{"Tomasz", "Wozniak", player.PositionDefender, [6]int{57, 62, 76, 51, 23, 71}, 97},
		{"Elias", "Sandberg", player.PositionMidfielder, [6]int{49, 67, 81, 71, 44, 61}, 98},
		{"Milan", "Jovic", player.PositionMidfielder, [6]int{53, 65, 77, 69, 51, 57}, 98},
		{"Ayo", "Adeyemi", player.PositionAttacker, [6]int{45, 72, 75, 73, 77, 25}, 99},
		{"Dylan", "Carver", player.PositionAttacker, [6]int{49, 69, 79, 70, 75, 23}, 98},
	})...)
	players = append(players, buildSquad(TeamIDWhitefield, []seedRow{
		{"Arno", "Visser", player.PositionGoalkeeper, [6]int{21, 81, 63, 54, 5, 46}, 97},
		{"Keith", "Morrow", player.PositionDefender, [6]int{65, 67, 74, 59, 23, 82}, 95},
		{"Raul", "Ibanez", player.PositionDefender, [6]int{71, 61, 77, 55, 17, 83}, 96},
		{"Finn", "Gallagher", player.PositionDefender, [6]int{56, 71, 73, 63, 28, 76}, 94},
		{"Bakary", "Sow", player.PositionDefender, [6]int{68, 57, 83, 54, 31, 79}, 97},
		{"Julien", "Mercier", player.PositionMidfielder, [6]int{49, 75, 80, 82, 51, 55}, 96},
		{"Oskar", "Hedlund", player.PositionMidfielder, [6]int{53, 72, 85, 76, 47, 63}, 98},
		{"Ciaran", "Byrne", player.PositionMidfielder, [6]int{59, 68, 76, 75, 58, 67}, 95},
		{"Gabriel", "Fontes", player.PositionAttacker, [6]int{44, 81, 71, 82, 86, 26}, 95},
		{"Adnan", "Yilmaz", player.PositionAttacker, [6]int{53, 73, 76, 75, 79, 31}, 96},
		{"Hugo", "Laurent", player.PositionAttacker, [6]int{41, 79, 68, 80, 84, 23}, 94},
		{"Dmitri", "Sokolov", player.PositionGoalkeeper, [6]int{27, 73, 57, 51, 5, 43}, 98},
		{"Amadou", "Barry", player.PositionDefender, [6]int{59, 65, 79, 56, 21, 77}, 99},
		{"Jan", "Novotny", player.PositionDefender, [6]int{55, 64, 74, 54, 25, 70}, 98},
		{"Teddy", "Ashworth", player.PositionMidfielder, [6]int{51, 66, 83, 70, 43, 63}, 99},
		{"Rafael", "Ortega", player.PositionMidfielder, [6]int{55, 64, 76, 72, 53, 56}, 97},
		{"Ismail", "Toure", player.PositionAttacker, [6]int{43, 74, 74, 76, 80, 28}, 99},
		{"Maxim", "Dvorak", player.PositionAttacker, [6]int{47, 68, 78, 69, 74, 22}, 98},
	})...)
	return players
}
