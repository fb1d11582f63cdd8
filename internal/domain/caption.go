package domain

// CaptionRequest is the body of POST /api/generate-caption.
type CaptionRequest struct {
	ImageData string `json:"imageData"`
}

// CaptionResult is the response of a successful caption request.
// Confidence and ProcessingTime are synthetic presentation values; they do
// not measure any work performed by the server.
type CaptionResult struct {
	Caption        string  `json:"caption"`
	Confidence     float64 `json:"confidence"`
	ProcessingTime int     `json:"processingTime"` // milliseconds
	Timestamp      string  `json:"timestamp"`      // ISO-8601, UTC
}

// ErrorResponse is the body of a failed caption request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HistoryEntry is one item in the client's recent-captions list.
type HistoryEntry struct {
	ID        string `json:"id"`
	Image     string `json:"image"`     // submitted payload
	Caption   string `json:"caption"`
	Timestamp string `json:"timestamp"` // display time, e.g. "03:04 PM"
}

// TimestampLayout formats CaptionResult.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// HistoryTimeLayout formats HistoryEntry.Timestamp.
const HistoryTimeLayout = "03:04 PM"
