package session

import "fmt"

// Status is the lifecycle state of one item.
type Status int

const (
	StatusPending Status = iota
	StatusConverting
	StatusDone
	StatusError
)

// String returns the wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConverting:
		return "converting"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Label returns the text shown next to an item.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusConverting:
		return "Converting..."
	case StatusDone:
		return "Done"
	case StatusError:
		return "Error"
	}
	return ""
}

// MarshalText encodes the status by name so the frontend sees strings.
func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case StatusPending, StatusConverting, StatusDone, StatusError:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("invalid status %d", int(s))
}
