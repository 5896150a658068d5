package incident

// Reason classifies why sales were lost.
type Reason string

const (
	ReasonExternal      Reason = "external"
	ReasonInternal      Reason = "internal"
	ReasonStaffShortage Reason = "staff_shortage"
	ReasonNoProduct     Reason = "no_product"
)

// Reasons lists every reason in the order it is offered to the user.
var Reasons = []Reason{
	ReasonExternal,
	ReasonInternal,
	ReasonStaffShortage,
	ReasonNoProduct,
}

var reasonLabels = map[Reason]string{
	ReasonExternal:      "External losses",
	ReasonInternal:      "Internal losses",
	ReasonStaffShortage: "Staff shortage",
	ReasonNoProduct:     "Product unavailable",
}

// String returns the string representation of the reason.
func (r Reason) String() string {
	return string(r)
}

// IsValid returns true if the reason is one of the fixed enumeration.
func (r Reason) IsValid() bool {
	_, ok := reasonLabels[r]
	return ok
}

// Label returns the human-readable label for the reason.
func (r Reason) Label() string {
	if label, ok := reasonLabels[r]; ok {
		return label
	}
	return string(r)
}
