package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Tracing fields, carried on the context logger through a call chain.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldSessionID identifies one client orchestrator session
	FieldSessionID = "session_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"
)

// Metric fields, attached per entry.
const (
	FieldDurationMs = "duration_ms"
	FieldSize       = "size"
	FieldStatus     = "status"

	// FieldCaptionHash is the selector hash of a payload
	FieldCaptionHash = "caption_hash"
	FieldCategory    = "category"
	FieldVariant     = "variant"

	// FieldState is an orchestrator state name
	FieldState = "state"
)
