// Package logutils builds the process logger.
package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a new logger that writes JSON to the specified file.
// If file is empty, logs are written to stdout.
//
// When warnings is non-nil, warn and higher events are also written to it
// in a short human readable form.
//
// The level parameter can be one of: debug, info, warn, error, fatal.
func New(level string, file string, warnings io.Writer) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	// File Setup
	var writer io.Writer = os.Stdout
	if file != "" {
		logsDir := filepath.Dir(file)
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}

		osFile, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = osFile.Close() }
		writer = osFile
	}

	if warnings != nil {
		writer = zerolog.MultiLevelWriter(writer, &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: consoleWriter(warnings)},
			Level:  zerolog.WarnLevel,
		})
	}

	l := zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, closer, nil
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
		FieldsExclude: []string{
			zerolog.TimestampFieldName, "cmp", "request_id", "view_id",
		},
	}
}
