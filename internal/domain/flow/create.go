package flow

// CreateState is a step in the incident-creation wizard. Steps run in
// strict order; the end-time pair is entered only when the user chose to
// close the incident immediately.
type CreateState string

const (
	CreateChoosingManager     CreateState = "CHOOSING_MANAGER"
	CreateChoosingRestaurant  CreateState = "CHOOSING_RESTAURANT"
	CreateChoosingDay         CreateState = "CHOOSING_DAY"
	CreateChoosingStartHour   CreateState = "CHOOSING_START_HOUR"
	CreateChoosingStartMinute CreateState = "CHOOSING_START_MINUTE"
	CreateChoosingCloseMode   CreateState = "CHOOSING_CLOSE_MODE"
	CreateChoosingEndHour     CreateState = "CHOOSING_END_HOUR"
	CreateChoosingEndMinute   CreateState = "CHOOSING_END_MINUTE"
	CreateChoosingReason      CreateState = "CHOOSING_REASON"
	CreateEnteringComment     CreateState = "ENTERING_COMMENT"
	CreateChoosingAmount      CreateState = "CHOOSING_AMOUNT"
	CreateConfirming          CreateState = "CONFIRMING"
	CreateCommitted           CreateState = "COMMITTED"
	CreateCancelled           CreateState = "CANCELLED"
)

var validCreateStates = map[CreateState]bool{
	CreateChoosingManager:     true,
	CreateChoosingRestaurant:  true,
	CreateChoosingDay:         true,
	CreateChoosingStartHour:   true,
	CreateChoosingStartMinute: true,
	CreateChoosingCloseMode:   true,
	CreateChoosingEndHour:     true,
	CreateChoosingEndMinute:   true,
	CreateChoosingReason:      true,
	CreateEnteringComment:     true,
	CreateChoosingAmount:      true,
	CreateConfirming:          true,
	CreateCommitted:           true,
	CreateCancelled:           true,
}

var terminalCreateStates = map[CreateState]bool{
	CreateCommitted: true,
	CreateCancelled: true,
}

// createPrev maps each state to the step shown when the user goes back.
// Two states are special-cased in Prev: the first state has nowhere to go,
// and the reason step's predecessor depends on whether the end-time pair
// was entered.
var createPrev = map[CreateState]CreateState{
	CreateChoosingRestaurant:  CreateChoosingManager,
	CreateChoosingDay:         CreateChoosingRestaurant,
	CreateChoosingStartHour:   CreateChoosingDay,
	CreateChoosingStartMinute: CreateChoosingStartHour,
	CreateChoosingCloseMode:   CreateChoosingStartMinute,
	CreateChoosingEndHour:     CreateChoosingCloseMode,
	CreateChoosingEndMinute:   CreateChoosingEndHour,
	CreateEnteringComment:     CreateChoosingReason,
	CreateChoosingAmount:      CreateEnteringComment,
	CreateConfirming:          CreateChoosingAmount,
}

// String returns the string representation of the state.
func (s CreateState) String() string {
	return string(s)
}

// IsValid returns true if the state is a valid create-flow state.
func (s CreateState) IsValid() bool {
	return validCreateStates[s]
}

// IsTerminal returns true if the state ends the wizard.
func (s CreateState) IsTerminal() bool {
	return terminalCreateStates[s]
}

// Prev returns the state reached by back navigation and whether back is
// available at all. closeNow selects the predecessor of the reason step:
// the end-minute step when the end-time pair was entered, otherwise the
// close-mode step the pair was skipped from.
func (s CreateState) Prev(closeNow bool) (CreateState, bool) {
	if s == CreateChoosingReason {
		if closeNow {
			return CreateChoosingEndMinute, true
		}
		return CreateChoosingCloseMode, true
	}
	prev, ok := createPrev[s]
	return prev, ok
}
