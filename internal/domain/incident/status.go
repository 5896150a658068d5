package incident

// Status is the incident lifecycle state, keyed off the end timestamp:
// open while EndTime is nil, closed once it is set.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is a known lifecycle state.
func (s Status) IsValid() bool {
	return s == StatusOpen || s == StatusClosed
}
