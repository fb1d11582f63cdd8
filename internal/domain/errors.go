package domain

import "errors"

var (
	// ErrInvalidInput means the request carried no image data.
	ErrInvalidInput = errors.New("no image data provided")

	// ErrMalformedRequest means the request body could not be decoded.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrFileRead means a local file could not be read before upload.
	ErrFileRead = errors.New("failed to read file")

	// ErrNetworkOrServer covers transport failures and non-2xx responses.
	ErrNetworkOrServer = errors.New("caption request failed")
)
