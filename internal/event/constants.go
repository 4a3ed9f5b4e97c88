package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Log message constants
const (
	LogMsgHandlerErrorFormat = "%d event handler(s) failed for %s: %v"
)
