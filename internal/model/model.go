package model

type Status string

const (
	StatusDone   Status = "done"
	StatusMissed Status = "missed"
	StatusNone   Status = "none"
)

// Statuses lists every status in button order.
var Statuses = []Status{StatusDone, StatusMissed, StatusNone}

// Habit is a named daily activity. The JSON shape matches the /api/habits wire format.
type Habit struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Status Status `json:"status"`
}

func (s Status) Valid() bool {
	switch s {
	case StatusDone, StatusMissed, StatusNone:
		return true
	default:
		return false
	}
}

func (s Status) String() string { return string(s) }
