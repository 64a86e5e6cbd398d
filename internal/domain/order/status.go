package order

// Status represents the state of a placed order.
// The mutable cart is conceptually state zero ("basket") and is modeled
// separately; a placed order starts at StatusNew.
type Status string

const (
	StatusNew       Status = "new"
	StatusConfirmed Status = "confirmed"
	StatusAssembled Status = "assembled"
	StatusSent      Status = "sent"
)

// IsValid checks if the status is a valid order Status
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusConfirmed, StatusAssembled, StatusSent:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Next returns the immediate successor status, or "" for the terminal state
func (s Status) Next() Status {
	switch s {
	case StatusNew:
		return StatusConfirmed
	case StatusConfirmed:
		return StatusAssembled
	case StatusAssembled:
		return StatusSent
	}
	return ""
}

// CanTransitionTo checks if the status can transition to the target status.
// Transitions are strictly forward and never skip a state.
func (s Status) CanTransitionTo(target Status) bool {
	return target != "" && s.Next() == target
}
