package metadata

import "fmt"

type Status string

const (
	StatusInStock     Status = "in_stock"
	StatusAssigned    Status = "assigned"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
)

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return status, nil
}

func (s Status) isValid() bool {
	switch s {
	case StatusInStock, StatusAssigned, StatusMaintenance, StatusRetired:
		return true
	default:
		return false
	}
}

// Describe returns the phrase used in conflict messages when an operation
// is refused because of the current status.
func (s Status) Describe() string {
	switch s {
	case StatusInStock:
		return "not currently assigned (status: in stock)"
	case StatusAssigned:
		return "already assigned to another user"
	case StatusMaintenance:
		return "under maintenance"
	case StatusRetired:
		return "retired"
	default:
		return string(s)
	}
}
