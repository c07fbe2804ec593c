package match

// EventType enumerates everything the engine can append to the timeline.
type EventType string

const (
	EventKickoff       EventType = "kickoff"
	EventGoal          EventType = "goal"
	EventOwnGoal       EventType = "own_goal"
	EventPenaltyScored EventType = "penalty_scored"
	EventPenaltyMissed EventType = "penalty_missed"
	EventChanceMissed  EventType = "chance_missed"
	EventYellowCard    EventType = "yellow_card"
	EventRedCard       EventType = "red_card"
	EventSubstitution  EventType = "substitution"
	EventInjury        EventType = "injury"
	EventSave          EventType = "save"
	EventCorner        EventType = "corner"
	EventFreeKick      EventType = "free_kick"
	EventOffside       EventType = "offside"
	EventHalfTime      EventType = "half_time"
	EventFullTime      EventType = "full_time"
)

// Event is one immutable entry in the match timeline. For substitutions
// PlayerID is the incoming player and AssistPlayerID the outgoing one.
type Event struct {
	Minute         int
	Type           EventType
	Team           Side
	PlayerID       string
	AssistPlayerID string
	Description    string
}

// GoalTypes lists event types that change the score for the acting team.
var GoalTypes = map[EventType]struct{}{
	EventGoal:          {},
	EventOwnGoal:       {},
	EventPenaltyScored: {},
}
