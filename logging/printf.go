package logging

import (
	"context"
	"fmt"
	"log/slog"
)

// PrintfAdapter exposes a slog.Logger through the Printf-style interface used by the test
// framework and the poll engine.
type PrintfAdapter struct {
	Logger *slog.Logger
	Level  slog.Level
}

// Printf logs the formatted message at the adapter's level.
func (a PrintfAdapter) Printf(format string, args ...interface{}) {
	if a.Logger == nil {
		return
	}
	a.Logger.Log(context.Background(), a.Level, fmt.Sprintf(format, args...))
}
