package aitrace

// EventType names the engine decision a trace entry explains.
type EventType string

const (
	TypeEventProbability  EventType = "event_probability"
	TypeChanceEvaluation  EventType = "chance_evaluation"
	TypeCardDecision      EventType = "card_decision"
	TypeSubDecision       EventType = "sub_executed"
	TypeEnergyUpdate      EventType = "energy_update"
	TypePossessionSwing   EventType = "possession_swing"
	TypeStoppageComputed  EventType = "stoppage_computed"
	TypeStateTransition   EventType = "state_transition"
)

// Event captures one engine decision with the numbers that produced it.
// Inputs are raw values fed into the decision, Computed the derived
// probabilities or weights, Outcome what was actually rolled or chosen.
type Event struct {
	Type     EventType      `json:"type"`
	Minute   int            `json:"minute"`
	MatchID  string         `json:"matchId"`
	Team     string         `json:"team,omitempty"`
	PlayerID string         `json:"playerId,omitempty"`
	Inputs   map[string]any `json:"inputs,omitempty"`
	Computed map[string]any `json:"computed,omitempty"`
	Outcome  string         `json:"outcome"`
}

// Recorder collects trace events. Implementations must be cheap when
// tracing is disabled; the engine calls Record on the hot path.
type Recorder interface {
	Record(e Event)
}

// NopRecorder discards everything. It is the default when no collector
// is attached, so the engine never branches on nil.
type NopRecorder struct{}

func (NopRecorder) Record(Event) {}
