package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"testing/iotest"
	"time"

	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeTransport struct {
	mu      sync.Mutex
	calls   []string
	respond func(ctx context.Context, n int, imageData string) (*domain.CaptionResult, error)
}

func (f *fakeTransport) GenerateCaption(ctx context.Context, imageData string) (*domain.CaptionResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, imageData)
	n := len(f.calls)
	f.mu.Unlock()
	return f.respond(ctx, n, imageData)
}

func (f *fakeTransport) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func okTransport() *fakeTransport {
	return &fakeTransport{respond: func(_ context.Context, n int, _ string) (*domain.CaptionResult, error) {
		return &domain.CaptionResult{
			Caption:        fmt.Sprintf("caption %d", n),
			Confidence:     0.9,
			ProcessingTime: 77,
			Timestamp:      "2024-01-01T00:00:00.000Z",
		}, nil
	}}
}

// blockingTransport waits until released or until ctx is done.
func blockingTransport(started chan<- struct{}, release <-chan struct{}) *fakeTransport {
	return &fakeTransport{respond: func(ctx context.Context, n int, _ string) (*domain.CaptionResult, error) {
		close(started)
		select {
		case <-release:
			return &domain.CaptionResult{Caption: "late", Confidence: 0.9}, nil
		case <-ctx.Done():
			return nil, errors.Join(domain.ErrNetworkOrServer, ctx.Err())
		}
	}}
}

type recordingDisplay struct {
	mu      sync.Mutex
	events  []string
	results []*Result
	errors  []string
	history []domain.HistoryEntry
}

func (d *recordingDisplay) record(e string) {
	d.mu.Lock()
	d.events = append(d.events, e)
	d.mu.Unlock()
}

func (d *recordingDisplay) Clear()       { d.record("clear") }
func (d *recordingDisplay) ShowLoading() { d.record("loading") }
func (d *recordingDisplay) ShowError(m string) {
	d.record("error")
	d.mu.Lock()
	d.errors = append(d.errors, m)
	d.mu.Unlock()
}
func (d *recordingDisplay) ShowResult(r *Result) {
	d.record("result")
	d.mu.Lock()
	d.results = append(d.results, r)
	d.mu.Unlock()
}
func (d *recordingDisplay) ShowHistory(h []domain.HistoryEntry) {
	d.record("history")
	d.mu.Lock()
	d.history = h
	d.mu.Unlock()
}

// stepClock advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := current
		current = current.Add(step)
		return t
	}
}

func textFile(s string) File {
	return File{Name: "image.png", Reader: strings.NewReader(s)}
}

func TestOrchestrator_Success(t *testing.T) {
	defer goleak.VerifyNone(t)

	display := &recordingDisplay{}
	transport := okTransport()
	o := NewOrchestrator(transport, &Options{
		Display: display,
		Now:     stepClock(time.Date(2024, 5, 1, 15, 4, 0, 0, time.Local), 120*time.Millisecond),
	})
	assert.Equal(t, StateIdle, o.State())

	result, err := o.Submit(context.Background(), textFile("abc"))
	require.NoError(t, err)

	assert.Equal(t, StateSuccess, o.State())
	assert.False(t, o.Busy())
	assert.Equal(t, "caption 1", result.Caption)
	assert.Equal(t, 0.9, result.Confidence)
	assert.Equal(t, int64(120), result.ProcessingTime, "displayed time is the client-observed round trip")
	assert.Equal(t, 77, result.ServerProcessingTime)
	assert.Equal(t, Variations, result.Variations)
	assert.Equal(t, "data:text/plain;base64,YWJj", result.Image)
	assert.Same(t, result, o.Result())
	assert.Empty(t, o.ErrorMessage())

	history := o.History()
	require.Len(t, history, 1)
	assert.Equal(t, "caption 1", history[0].Caption)
	assert.Equal(t, result.Image, history[0].Image)
	assert.Equal(t, "03:04 PM", history[0].Timestamp)
	assert.NotEmpty(t, history[0].ID)

	assert.Equal(t, []string{"clear", "loading", "result", "history"}, display.events)
	assert.Equal(t, []string{"data:text/plain;base64,YWJj"}, transport.calls)
}

func TestOrchestrator_ConfidenceFallback(t *testing.T) {
	transport := &fakeTransport{respond: func(context.Context, int, string) (*domain.CaptionResult, error) {
		return &domain.CaptionResult{Caption: "c"}, nil
	}}
	o := NewOrchestrator(transport, nil)

	result, err := o.Submit(context.Background(), textFile("x"))
	require.NoError(t, err)
	assert.Equal(t, 0.85, result.Confidence)
}

func TestOrchestrator_HistoryBound(t *testing.T) {
	o := NewOrchestrator(okTransport(), nil)

	for i := 0; i < 6; i++ {
		_, err := o.Submit(context.Background(), textFile(fmt.Sprintf("image-%d", i)))
		require.NoError(t, err)
	}

	history := o.History()
	require.Len(t, history, 5)
	for i, e := range history {
		assert.Equal(t, fmt.Sprintf("caption %d", 6-i), e.Caption)
	}
}

func TestOrchestrator_ServerError(t *testing.T) {
	display := &recordingDisplay{}
	calls := 0
	transport := &fakeTransport{respond: func(_ context.Context, n int, _ string) (*domain.CaptionResult, error) {
		calls = n
		if n == 1 {
			return &domain.CaptionResult{Caption: "first", Confidence: 0.9}, nil
		}
		return nil, &RequestError{StatusCode: 400, Message: "No image data provided"}
	}}
	o := NewOrchestrator(transport, &Options{Display: display})

	_, err := o.Submit(context.Background(), textFile("one"))
	require.NoError(t, err)

	_, err = o.Submit(context.Background(), textFile("two"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetworkOrServer)
	assert.Equal(t, 2, calls)

	assert.Equal(t, StateFailed, o.State())
	assert.Equal(t, "No image data provided", o.ErrorMessage())
	assert.Nil(t, o.Result(), "failed cycle shows no result")
	assert.Len(t, o.History(), 1, "failed cycle leaves history alone")
	assert.Equal(t, []string{"No image data provided"}, display.errors)
}

func TestOrchestrator_FileReadError(t *testing.T) {
	transport := okTransport()
	o := NewOrchestrator(transport, nil)

	_, err := o.Submit(context.Background(), File{Name: "broken.png", Reader: iotest.ErrReader(errors.New("disk gone"))})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFileRead)

	assert.Equal(t, StateFailed, o.State())
	assert.Equal(t, "Failed to read file", o.ErrorMessage())
	assert.Zero(t, transport.callCount(), "no request after a read failure")
	assert.Empty(t, o.History())
}

func TestOrchestrator_RetryClearsError(t *testing.T) {
	o := NewOrchestrator(okTransport(), nil)

	_, err := o.Submit(context.Background(), File{Name: "x", Reader: iotest.ErrReader(errors.New("boom"))})
	require.Error(t, err)
	require.NotEmpty(t, o.ErrorMessage())

	_, err = o.Submit(context.Background(), textFile("fine"))
	require.NoError(t, err)
	assert.Empty(t, o.ErrorMessage())
	assert.Equal(t, StateSuccess, o.State())
}

func TestOrchestrator_Busy(t *testing.T) {
	defer goleak.VerifyNone(t)

	started := make(chan struct{})
	release := make(chan struct{})
	o := NewOrchestrator(blockingTransport(started, release), nil)

	done := make(chan error, 1)
	go func() {
		_, err := o.Submit(context.Background(), textFile("slow"))
		done <- err
	}()

	<-started
	assert.True(t, o.Busy())
	assert.Equal(t, StateRequesting, o.State())

	_, err := o.Submit(context.Background(), textFile("second"))
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, o.History(), 1)
}

func TestOrchestrator_Cancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	display := &recordingDisplay{}
	started := make(chan struct{})
	o := NewOrchestrator(blockingTransport(started, make(chan struct{})), &Options{Display: display})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := o.Submit(ctx, textFile("slow"))
		done <- err
	}()

	<-started
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, StateIdle, o.State())
	assert.False(t, o.Busy())
	assert.Nil(t, o.Result())
	assert.Empty(t, o.ErrorMessage())
	assert.Empty(t, o.History())
	assert.Empty(t, display.errors, "cancellation is not shown as an error")
}

func TestOrchestrator_Timeout(t *testing.T) {
	defer goleak.VerifyNone(t)

	started := make(chan struct{})
	o := NewOrchestrator(blockingTransport(started, make(chan struct{})), &Options{Timeout: 20 * time.Millisecond})

	_, err := o.Submit(context.Background(), textFile("slow"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StateFailed, o.State())
	assert.Equal(t, "Caption request timed out", o.ErrorMessage())
	assert.Empty(t, o.History())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "requesting", StateRequesting.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Failed to generate caption", userMessage(errors.Join(domain.ErrNetworkOrServer, errors.New("dial tcp: refused"))))
	assert.Equal(t, "Failed to read file", userMessage(domain.ErrFileRead))
	assert.Equal(t, "custom", userMessage(&RequestError{StatusCode: 500, Message: "custom"}))
}
