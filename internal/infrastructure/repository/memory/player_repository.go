package memory

import (
	"context"
	"sync"

	"github.com/veller/retrofoot-sub002/internal/domain/player"
)

type PlayerRepository struct {
	mu            sync.RWMutex
	players       []player.Player
	playersByTeam map[string][]player.Player
	index         map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	playersByTeam := make(map[string][]player.Player)
	index := make(map[string]player.Player, len(players))

	for _, p := range players {
		playersByTeam[p.TeamID] = append(playersByTeam[p.TeamID], p)
		index[p.ID] = p
	}

	return &PlayerRepository{
		players:       append([]player.Player(nil), players...),
		playersByTeam: playersByTeam,
		index:         index,
	}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	out = append(out, r.players...)

	return out, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := r.playersByTeam[teamID]
	out := make([]player.Player, 0, len(players))
	out = append(out, players...)

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[playerID]
	if !ok {
		return player.Player{}, false, nil
	}

	return p, true, nil
}
