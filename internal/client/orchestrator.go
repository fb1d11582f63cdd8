// Package client drives one upload/caption cycle at a time against the
// caption service and keeps a short history of results.
package client

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/domain"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/logger"
	"github.com/google/uuid"
)

// State is the orchestrator's position in the upload/request lifecycle.
type State int

const (
	StateIdle State = iota
	StateReading
	StateRequesting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReading:
		return "reading"
	case StateRequesting:
		return "requesting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrBusy is returned by Submit while another cycle is in flight.
var ErrBusy = errors.New("a caption request is already in progress")

// defaultConfidence replaces a missing or zero confidence in the response.
const defaultConfidence = 0.85

const (
	msgFileRead = "Failed to read file"
	msgTimeout  = "Caption request timed out"
)

// Variations are decorative alternates shown next to every caption. They do
// not depend on the image.
var Variations = []string{
	"A scene depicting various objects with interesting textures, colors, and spatial relationships.",
	"Multiple items arranged with distinctive visual characteristics and compositions.",
	"An arrangement showcasing interesting object relationships and visual diversity.",
}

// Result is a caption as shown to the user.
type Result struct {
	Caption    string
	Confidence float64
	// ProcessingTime is the client-observed round trip in milliseconds and
	// is the value displayed and exported.
	ProcessingTime int64
	// ServerProcessingTime is the synthetic value reported by the server.
	ServerProcessingTime int
	Timestamp            string // server timestamp, ISO-8601
	Variations           []string
	Image                string // submitted data URL
	FileName             string
}

// Options configures an Orchestrator.
type Options struct {
	Display     Display          // nil discards output
	Timeout     time.Duration    // per-request; zero means none beyond ctx
	HistorySize int              // zero uses DefaultHistorySize
	Now         func() time.Time // nil uses time.Now
}

// Orchestrator runs the Idle → Reading → Requesting → Success|Failed cycle.
// At most one cycle runs at a time; Submit returns ErrBusy otherwise.
type Orchestrator struct {
	transport Transport
	display   Display
	timeout   time.Duration
	now       func() time.Time
	sessionID string

	mu       sync.Mutex
	state    State
	inFlight bool
	result   *Result
	errMsg   string
	history  *History
}

// NewOrchestrator creates an orchestrator that sends requests through t.
// Parameters:
//   - t: transport to the caption service.
//   - opts: optional settings; nil uses defaults.
//
// Returns:
//   - *Orchestrator: idle orchestrator with empty history.
func NewOrchestrator(t Transport, opts *Options) *Orchestrator {
	if opts == nil {
		opts = &Options{}
	}
	o := &Orchestrator{
		transport: t,
		display:   opts.Display,
		timeout:   opts.Timeout,
		now:       opts.Now,
		sessionID: uuid.NewString(),
		history:   NewHistory(opts.HistorySize),
	}
	if o.display == nil {
		o.display = NopDisplay{}
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// Submit runs one full cycle for file.
// Parameters:
//   - ctx: cancelling it aborts the cycle and returns the orchestrator to
//     Idle without touching history.
//   - file: content to caption.
//
// Returns:
//   - *Result: the displayed result on success.
//   - error: ErrBusy, ctx.Err() on cancellation, or the stage error wrapped
//     in its domain category.
func (o *Orchestrator) Submit(ctx context.Context, file File) (*Result, error) {
	if !o.begin() {
		return nil, ErrBusy
	}
	o.display.Clear()

	ctx = logger.SetComponent(logger.SetSessionID(ctx, o.sessionID), "client")

	dataURL, err := EncodeDataURL(file.Reader)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorf("Failed to read %q", file.Name)
		o.fail(ctx, msgFileRead)
		return nil, err
	}

	o.transition(ctx, StateRequesting)
	o.display.ShowLoading()

	reqCtx := ctx
	if o.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	start := o.now()
	resp, err := o.transport.GenerateCaption(reqCtx, dataURL)
	elapsed := roundMillis(o.now().Sub(start))

	if err != nil {
		if ctx.Err() != nil {
			logger.CtxInfo(ctx, "Caption request canceled")
			o.abort(ctx)
			return nil, ctx.Err()
		}
		logger.FromContext(ctx).WithError(err).Error("Caption generation error")
		o.fail(ctx, userMessage(err))
		return nil, err
	}

	confidence := resp.Confidence
	if confidence == 0 {
		confidence = defaultConfidence
	}

	result := &Result{
		Caption:              resp.Caption,
		Confidence:           confidence,
		ProcessingTime:       elapsed,
		ServerProcessingTime: resp.ProcessingTime,
		Timestamp:            resp.Timestamp,
		Variations:           append([]string(nil), Variations...),
		Image:                dataURL,
		FileName:             file.Name,
	}

	entries := o.succeed(ctx, result, domain.HistoryEntry{
		ID:        uuid.NewString(),
		Image:     dataURL,
		Caption:   resp.Caption,
		Timestamp: o.now().Format(domain.HistoryTimeLayout),
	})

	logger.With(logger.Fields{logger.FieldDurationMs: elapsed}).Info(ctx, "Caption received")

	o.display.ShowResult(result)
	o.display.ShowHistory(entries)
	return result, nil
}

// begin claims the orchestrator for a new cycle and resets transient state.
func (o *Orchestrator) begin() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFlight {
		return false
	}
	o.inFlight = true
	o.state = StateReading
	o.result = nil
	o.errMsg = ""
	return true
}

func (o *Orchestrator) transition(ctx context.Context, s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
	logger.With(logger.Fields{logger.FieldState: s.String()}).Debug(ctx, "State changed")
}

func (o *Orchestrator) fail(ctx context.Context, message string) {
	o.mu.Lock()
	o.state = StateFailed
	o.errMsg = message
	o.inFlight = false
	o.mu.Unlock()
	logger.With(logger.Fields{logger.FieldState: StateFailed.String()}).Debug(ctx, "State changed")
	o.display.ShowError(message)
}

func (o *Orchestrator) abort(ctx context.Context) {
	o.mu.Lock()
	o.state = StateIdle
	o.inFlight = false
	o.mu.Unlock()
	logger.With(logger.Fields{logger.FieldState: StateIdle.String()}).Debug(ctx, "State changed")
	o.display.Clear()
}

func (o *Orchestrator) succeed(ctx context.Context, r *Result, e domain.HistoryEntry) []domain.HistoryEntry {
	o.mu.Lock()
	o.state = StateSuccess
	o.result = r
	o.history.Add(e)
	entries := o.history.Entries()
	o.inFlight = false
	o.mu.Unlock()
	logger.With(logger.Fields{logger.FieldState: StateSuccess.String()}).Debug(ctx, "State changed")
	return entries
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Busy reports whether a cycle is in flight. Callers use it to disable
// further submissions.
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight
}

// Result returns the result of the last successful cycle, or nil once a new
// cycle has started or the last one failed.
func (o *Orchestrator) Result() *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

// ErrorMessage returns the user-visible error of the last failed cycle.
func (o *Orchestrator) ErrorMessage() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.errMsg
}

// History returns the recent captions, most recent first.
func (o *Orchestrator) History() []domain.HistoryEntry {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.history.Entries()
}

func userMessage(err error) string {
	var reqErr *RequestError
	switch {
	case errors.As(err, &reqErr):
		return reqErr.Message
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	case errors.Is(err, domain.ErrFileRead):
		return msgFileRead
	default:
		return defaultFailureMessage
	}
}

func roundMillis(d time.Duration) int64 {
	return int64(math.Round(float64(d) / float64(time.Millisecond)))
}
