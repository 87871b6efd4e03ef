package types

// Status is a type for the lifecycle of a persisted configuration row (fees, tax rates)
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)
