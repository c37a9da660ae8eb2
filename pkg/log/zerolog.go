package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/goml-tools/lingen/pkg/errors"
)

// EnableZerologWarnings routes library warnings through a zerolog logger.
// Warning types that implement zerolog.LogObjectMarshaler are logged with
// their structured fields; anything else falls back to the error message.
func EnableZerologWarnings(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := zerolog.New(w).With().Timestamp().Logger()
	errors.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev.EmbedObject(obj).Msg("lingen warning")
			return
		}
		ev.Err(warning).Msg("lingen warning")
	})
	return logger
}
