package events

// EventType represents the type of an event in the system.
type EventType string

const (
	EventTypeUserRegistered   EventType = "User.Registered"
	EventTypeStatementCreated EventType = "Statement.Created"
)

func (t EventType) String() string {
	return string(t)
}
