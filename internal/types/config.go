package types

type RunMode string

const (
	// ModeLocal runs the API server and the temporal worker in one process
	ModeLocal RunMode = "local"
	// ModeAPI runs just the API server
	ModeAPI RunMode = "api"
	// ModeWorker runs just the temporal worker that recalculates fees in the background
	ModeWorker RunMode = "worker"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)
