// iojson are utilities for reading and writing JSON IO from a
// command line interface perspective
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Error is the JSON shape of errors reported by commands in --json mode.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func jsonError(msg string, jsonErr error) string {
	// Use json.Marshal to properly escape strings
	msgBytes, _ := json.Marshal(msg)
	errBytes, _ := json.Marshal(jsonErr.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes)
}

// MarshalError is a utility for creating an error struct, it will first
// attempt the marshal the struct, if that fails it will return return
// a manually constructed JSON blob with the provided error msg and
// a note that there was a marashling error and the this indicates a
// bug in the software.
func MarshalError(msg string, data map[string]any) string {
	resp := Error{Message: msg, Data: data}

	bits, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return jsonError(msg, err)
	}

	return string(bits)
}

// WriteError writes a marshalled [Error] to w.
func WriteError(w io.Writer, str string, data map[string]any) error {
	_, err := fmt.Fprintln(w, MarshalError(str, data))
	return err
}

// WriteWith writes obj as indented JSON to w; marshal failures are reported
// on ew.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		errStr := jsonError("error marshaling in iojson.Write", err)
		_, err = fmt.Fprintln(ew, errStr)
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// Write calls WriteWith with [os.Stdout] and [os.Stderr]
func Write(obj any) error {
	return WriteWith(os.Stdout, os.Stderr, obj)
}

// WriteLine writes obj as a single line of compact JSON, for newline
// delimited streams.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal json line: %w", err)
	}
	bits = append(bits, '\n')
	_, err = w.Write(bits)
	return err
}
