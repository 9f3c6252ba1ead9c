package domain

// TransitionPolicy decides whether a reservation may move between statuses
type TransitionPolicy interface {
	Allowed(from, to ReservationStatus) bool
	Name() string
}

// PermissiveTransitions allows any change between known statuses
type PermissiveTransitions struct{}

func (PermissiveTransitions) Allowed(from, to ReservationStatus) bool {
	return from.IsValid() && to.IsValid()
}

func (PermissiveTransitions) Name() string { return "permissive" }

// TransitionTable allows only the listed transitions. Same-status updates are always allowed.
type TransitionTable map[ReservationStatus][]ReservationStatus

// StrictTransitions only lets a reserved reservation be canceled or completed
var StrictTransitions = TransitionTable{
	StatusReserved: {StatusCanceled, StatusCompleted},
}

func (t TransitionTable) Allowed(from, to ReservationStatus) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (t TransitionTable) Name() string { return "strict" }

// TransitionPolicyByName возвращает политику по имени из конфигурации
func TransitionPolicyByName(name string) (TransitionPolicy, bool) {
	switch name {
	case "", "permissive":
		return PermissiveTransitions{}, true
	case "strict":
		return StrictTransitions, true
	default:
		return nil, false
	}
}
