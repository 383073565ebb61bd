package broker

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	TaskCreated EventType = "task.created"
	TaskUpdated EventType = "task.updated"
	TaskDeleted EventType = "task.deleted"

	UserRegistered EventType = "user.registered"
	UserUpdated    EventType = "user.updated"
	UserDeleted    EventType = "user.deleted"
)

// SubjectForEntity returns the NATS subject that events for an entity publish to
func SubjectForEntity(entity string) string {
	switch entity {
	case "user":
		return UserEventsSubject
	default:
		return TaskEventsSubject
	}
}
