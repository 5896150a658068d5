package flow

// CloseState is a step in the close-incident wizard: pick an open incident,
// collect the end time, confirm.
type CloseState string

const (
	ClosePickingIncident   CloseState = "PICKING_INCIDENT"
	CloseChoosingEndDay    CloseState = "CHOOSING_END_DAY"
	CloseChoosingEndHour   CloseState = "CHOOSING_END_HOUR"
	CloseChoosingEndMinute CloseState = "CHOOSING_END_MINUTE"
	CloseConfirming        CloseState = "CONFIRMING"
	CloseCommitted         CloseState = "COMMITTED"
	CloseCancelled         CloseState = "CANCELLED"
)

var validCloseStates = map[CloseState]bool{
	ClosePickingIncident:   true,
	CloseChoosingEndDay:    true,
	CloseChoosingEndHour:   true,
	CloseChoosingEndMinute: true,
	CloseConfirming:        true,
	CloseCommitted:         true,
	CloseCancelled:         true,
}

var terminalCloseStates = map[CloseState]bool{
	CloseCommitted: true,
	CloseCancelled: true,
}

var closePrev = map[CloseState]CloseState{
	CloseChoosingEndDay:    ClosePickingIncident,
	CloseChoosingEndHour:   CloseChoosingEndDay,
	CloseChoosingEndMinute: CloseChoosingEndHour,
	CloseConfirming:        CloseChoosingEndMinute,
}

// String returns the string representation of the state.
func (s CloseState) String() string {
	return string(s)
}

// IsValid returns true if the state is a valid close-flow state.
func (s CloseState) IsValid() bool {
	return validCloseStates[s]
}

// IsTerminal returns true if the state ends the wizard.
func (s CloseState) IsTerminal() bool {
	return terminalCloseStates[s]
}

// Prev returns the state reached by back navigation and whether back is
// available from this state.
func (s CloseState) Prev() (CloseState, bool) {
	prev, ok := closePrev[s]
	return prev, ok
}
