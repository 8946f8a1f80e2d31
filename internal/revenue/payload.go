package revenue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"ise-marketing/propdesk/internal/models/dtos"
)

// ErrMalformedPayload is returned when a list response carries something other
// than an array in its data field.
var ErrMalformedPayload = errors.New("malformed property list payload")

type listEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// DecodeListResponse reads a {success, data} list response. An unsuccessful
// response yields an empty list rather than an error.
func DecodeListResponse(r io.Reader) ([]dtos.Property, error) {
	var env listEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if !env.Success {
		return []dtos.Property{}, nil
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("%w: data is not a list", ErrMalformedPayload)
	}

	var props []dtos.Property
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return props, nil
}
