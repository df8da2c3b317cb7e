package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger shared by the gateway and the
// cache warmer. Production emits JSON lines; APP_ENV=dev or
// development switches to a console writer for local runs. The service
// name is stamped on every line so the two binaries' sweep and cache
// logs stay distinguishable in a shared stream.
func NewLogger(env, service string) zerolog.Logger {
	var out io.Writer = os.Stdout
	if env == "dev" || env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).With().
		Timestamp().
		Str("service", service).
		Logger()
}
