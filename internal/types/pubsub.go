package types

// PubSubBackend selects the watermill implementation used for fee events
type PubSubBackend string

const (
	PubSubBackendMemory PubSubBackend = "memory"
	PubSubBackendKafka  PubSubBackend = "kafka"
)

// EventName identifies a published domain event
type EventName string

const (
	EventOrderFeesUpdated   EventName = "order.fees.updated"
	EventOrderFeesRemoved   EventName = "order.fees.removed"
	EventEnterpriseFeeSaved EventName = "enterprise_fee.saved"
)
