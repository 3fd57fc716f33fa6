package kafka

// Topic definitions for CRM event streaming
const (
	// Application lifecycle
	TopicApplicationCompleted = "applications.completed"
	TopicApplicationStarted   = "applications.started"

	// Lead capture
	TopicLeadCreated = "leads.created"
)
