package flow

import "testing"

func TestCreateState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    CreateState
		expected bool
	}{
		{CreateChoosingManager, false},
		{CreateChoosingRestaurant, false},
		{CreateChoosingCloseMode, false},
		{CreateConfirming, false},
		{CreateCommitted, true},
		{CreateCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.expected {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCreateState_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		state    CreateState
		expected bool
	}{
		{"valid state", CreateChoosingManager, true},
		{"valid terminal", CreateCommitted, true},
		{"invalid state", CreateState("INVALID"), false},
		{"empty state", CreateState(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCreateState_Prev(t *testing.T) {
	tests := []struct {
		name     string
		state    CreateState
		closeNow bool
		want     CreateState
		ok       bool
	}{
		{"first state has no prev", CreateChoosingManager, false, "", false},
		{"restaurant back to manager", CreateChoosingRestaurant, false, CreateChoosingManager, true},
		{"day back to restaurant", CreateChoosingDay, false, CreateChoosingRestaurant, true},
		{"end hour back to close mode", CreateChoosingEndHour, true, CreateChoosingCloseMode, true},
		{"reason back over skipped pair", CreateChoosingReason, false, CreateChoosingCloseMode, true},
		{"reason back through end time", CreateChoosingReason, true, CreateChoosingEndMinute, true},
		{"confirm back to amount", CreateConfirming, true, CreateChoosingAmount, true},
		{"terminal has no prev", CreateCommitted, false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.state.Prev(tt.closeNow)
			if ok != tt.ok {
				t.Fatalf("Prev() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Prev() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreateFlow_ForwardChainReachesConfirm(t *testing.T) {
	// Walk Prev backwards from Confirming with the end-time pair entered;
	// every step of the wizard must be visited exactly once.
	seen := map[CreateState]bool{}
	state := CreateConfirming
	for {
		if seen[state] {
			t.Fatalf("back navigation loops at %v", state)
		}
		seen[state] = true
		prev, ok := state.Prev(true)
		if !ok {
			break
		}
		state = prev
	}

	if state != CreateChoosingManager {
		t.Errorf("back chain ends at %v, want %v", state, CreateChoosingManager)
	}
	if len(seen) != 12 {
		t.Errorf("back chain visited %d states, want 12", len(seen))
	}
}

func TestCloseState_Prev(t *testing.T) {
	tests := []struct {
		name  string
		state CloseState
		want  CloseState
		ok    bool
	}{
		{"first state has no prev", ClosePickingIncident, "", false},
		{"end day back to pick", CloseChoosingEndDay, ClosePickingIncident, true},
		{"end hour back to day", CloseChoosingEndHour, CloseChoosingEndDay, true},
		{"confirm back to minute", CloseConfirming, CloseChoosingEndMinute, true},
		{"terminal has no prev", CloseCancelled, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.state.Prev()
			if ok != tt.ok {
				t.Fatalf("Prev() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Prev() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCloseState_IsTerminal(t *testing.T) {
	for _, s := range []CloseState{ClosePickingIncident, CloseChoosingEndDay, CloseConfirming} {
		if s.IsTerminal() {
			t.Errorf("%v should not be terminal", s)
		}
	}
	for _, s := range []CloseState{CloseCommitted, CloseCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%v should be terminal", s)
		}
	}
}

func TestKind_IsValid(t *testing.T) {
	if !KindCreate.IsValid() || !KindClose.IsValid() {
		t.Error("flow kinds should be valid")
	}
	if Kind("report").IsValid() {
		t.Error("unknown kind should be invalid")
	}
}
