package artifact

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrMalformed is returned when an uploaded image payload is empty or not
// valid base64.
var ErrMalformed = errors.New("artifact: malformed or empty image payload")

// Decode converts a client-supplied image string into raw bytes. Clients send
// either bare base64 or a data URL (data:image/...;base64,<payload>); anything
// before the first comma is treated as the data-URL prefix and stripped.
func Decode(input string) ([]byte, error) {
	if input == "" {
		return nil, ErrMalformed
	}

	payload := input
	if idx := strings.Index(payload, ","); idx >= 0 {
		payload = payload[idx+1:]
	}
	if payload == "" {
		return nil, ErrMalformed
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrMalformed
	}
	return data, nil
}

// Encode renders stored bytes as a data URL. The MIME type is always
// image/png: the mobile and dashboard clients render every document as PNG,
// so the type is fixed by contract regardless of the original upload format.
func Encode(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}
