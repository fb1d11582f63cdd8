package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"path"
	"time"

	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/domain"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/storage"
	"github.com/google/uuid"
)

// ExportFormat selects the layout of an exported result.
type ExportFormat string

const (
	ExportText ExportFormat = "txt"
	ExportJSON ExportFormat = "json"
)

// ParseExportFormat validates s as an ExportFormat.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case ExportText, ExportJSON:
		return ExportFormat(s), nil
	default:
		return "", fmt.Errorf("unknown export format %q (want txt or json)", s)
	}
}

// FileName is the name given to an exported file of this format.
func (f ExportFormat) FileName() string {
	if f == ExportJSON {
		return "caption-data.json"
	}
	return "caption.txt"
}

// ContentType is the MIME type of an exported file of this format.
func (f ExportFormat) ContentType() string {
	if f == ExportJSON {
		return "application/json"
	}
	return "text/plain"
}

// ConfidencePercent is confidence as a rounded whole percentage.
func ConfidencePercent(confidence float64) int {
	return int(math.Round(confidence * 100))
}

// CopyText is the text placed on the clipboard for a result.
func CopyText(r *Result) string {
	return r.Caption
}

// FormatText renders r as the plain-text export.
func FormatText(r *Result) string {
	return fmt.Sprintf("Caption: %s\nConfidence: %d%%\nProcessing Time: %dms",
		r.Caption, ConfidencePercent(r.Confidence), r.ProcessingTime)
}

type jsonSnapshot struct {
	Caption        string   `json:"caption"`
	Confidence     int      `json:"confidence"`
	ProcessingTime int64    `json:"processingTime"`
	Variations     []string `json:"variations"`
	GeneratedAt    string   `json:"generatedAt"`
}

// FormatJSON renders r as the structured export, indented by two spaces.
func FormatJSON(r *Result, generatedAt time.Time) ([]byte, error) {
	variations := r.Variations
	if variations == nil {
		variations = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonSnapshot{
		Caption:        r.Caption,
		Confidence:     ConfidencePercent(r.Confidence),
		ProcessingTime: r.ProcessingTime,
		Variations:     variations,
		GeneratedAt:    generatedAt.UTC().Format(domain.TimestampLayout),
	}); err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Exporter writes results to object storage.
type Exporter struct {
	storage storage.ObjectStorage
	prefix  string
	now     func() time.Time
	newID   func() string
}

// NewExporter creates an exporter writing under prefix in s.
func NewExporter(s storage.ObjectStorage, prefix string) *Exporter {
	return &Exporter{
		storage: s,
		prefix:  prefix,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Export stores r in the given format.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - r: result to export.
//   - format: text or JSON layout.
//
// Returns:
//   - string: location of the stored file.
//   - error: non-nil if formatting or the upload fails.
func (e *Exporter) Export(ctx context.Context, r *Result, format ExportFormat) (string, error) {
	var body []byte
	switch format {
	case ExportJSON:
		b, err := FormatJSON(r, e.now())
		if err != nil {
			return "", err
		}
		body = b
	case ExportText:
		body = []byte(FormatText(r))
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}

	key := path.Join(e.prefix, e.newID(), format.FileName())
	if err := e.storage.Upload(ctx, key, bytes.NewReader(body), int64(len(body)), format.ContentType()); err != nil {
		return "", fmt.Errorf("failed to export caption: %w", err)
	}
	return e.storage.GetURL(key), nil
}
