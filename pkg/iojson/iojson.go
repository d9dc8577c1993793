// Package iojson reads command input and writes command output as JSON.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error is written in place of the output when it cannot be encoded.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func jsonError(msg string, jsonErr error) string {
	bits, err := json.Marshal(Error{
		Message: msg,
		Data:    map[string]any{"json_error": jsonErr.Error()},
	})
	if err != nil {
		// Unreachable: both fields are plain strings.
		return fmt.Sprintf(`{"message":%q}`, msg)
	}
	return string(bits)
}

// WriteWith writes obj to w as indented JSON. If obj cannot be encoded, an
// Error object is written to ew instead and the returned error is nil unless
// that write fails.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, err = fmt.Fprintln(ew, jsonError("error marshaling in iojson.Write", err))
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
