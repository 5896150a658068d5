package flow

// Kind identifies which top-level wizard a session is running.
type Kind string

const (
	KindCreate Kind = "create"
	KindClose  Kind = "close"
)

// String returns the string representation of the flow kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid returns true if the kind is one of the two wizards.
func (k Kind) IsValid() bool {
	return k == KindCreate || k == KindClose
}
