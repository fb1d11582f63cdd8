package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/client"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/domain"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintSelection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printSelection(&buf, selector.Select("abc")))

	out := buf.String()
	assert.Contains(t, out, "335979458")
	assert.Contains(t, out, "2 (portrait)")
	assert.Contains(t, out, selector.Select("abc").Caption)
}

func TestReadPayload(t *testing.T) {
	got, err := readPayload("hello world", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)

	got, err = readPayload("-", strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))
	got, err = readPayload("@"+path, nil)
	require.NoError(t, err)
	assert.Equal(t, "data:text/plain;base64,YWJj", got)

	_, err = readPayload("@"+filepath.Join(t.TempDir(), "missing"), nil)
	assert.ErrorIs(t, err, domain.ErrFileRead)
}

func TestTerminalDisplay(t *testing.T) {
	var out, errOut bytes.Buffer
	d := newTerminalDisplay(&out, &errOut)

	d.ShowLoading()
	d.ShowResult(&client.Result{
		Caption:        "A caption.",
		Confidence:     0.91,
		ProcessingTime: 88,
		Variations:     client.Variations,
		FileName:       "cat.png",
	})
	d.ShowHistory([]domain.HistoryEntry{
		{Caption: "second", Timestamp: "03:05 PM"},
		{Caption: "first", Timestamp: "03:04 PM"},
	})

	s := out.String()
	assert.Contains(t, s, "cat.png")
	assert.Contains(t, s, "Caption:         A caption.")
	assert.Contains(t, s, "Confidence:      91%")
	assert.Contains(t, s, "Processing Time: 88ms")
	assert.Contains(t, s, client.Variations[0])
	assert.Less(t, strings.Index(s, "second"), strings.Index(s, "first"))

	d.ShowLoading()
	d.ShowError("No image data provided")
	assert.Contains(t, errOut.String(), "Error: No image data provided")
}

func TestTerminalDisplay_Empty(t *testing.T) {
	var out bytes.Buffer
	newTerminalDisplay(&out, &out).ShowEmpty()
	assert.Equal(t, "Upload an image to begin\nSupports JPG, PNG, WebP (max 10MB)\n", out.String())
}
