package client

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/domain"
	"github.com/gabriel-vasile/mimetype"
)

// MaxAdvertisedSize is the upload limit shown to users. It is not enforced.
const MaxAdvertisedSize = 10 << 20

// AcceptedFormats lists the image types shown to users. Not enforced either.
var AcceptedFormats = []string{"JPG", "PNG", "WebP"}

// File is a user-selected file handed to the orchestrator.
type File struct {
	Name   string
	Reader io.Reader
}

// OpenFile opens path for submission. The caller closes the returned closer.
func OpenFile(path string) (File, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, nil, errors.Join(domain.ErrFileRead, err)
	}
	return File{Name: filepath.Base(path), Reader: f}, f, nil
}

// EncodeDataURL reads r fully and returns it as a base64 data URL. The MIME
// type is sniffed from the content; no image validation happens here.
// Parameters:
//   - r: file content.
//
// Returns:
//   - string: data URL of the form data:<mime>;base64,<data>.
//   - error: domain.ErrFileRead joined with the read error.
func EncodeDataURL(r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%w: no reader", domain.ErrFileRead)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Join(domain.ErrFileRead, err)
	}

	mime, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")

	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mime) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(mime)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String(), nil
}
