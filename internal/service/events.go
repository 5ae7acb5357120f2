package service

// Websocket event names
const (
	EventDocumentPosted    = "inventory_doc_posted"
	EventDocumentCancelled = "inventory_doc_cancelled"
)

// EventPublisher pushes document events to connected admin screens.
type EventPublisher interface {
	Publish(event string, data map[string]interface{})
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, map[string]interface{}) {}
