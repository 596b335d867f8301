package log

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// GooseLogger routes goose migration output into zerolog.
// Progress lines are demoted to debug so a normal start stays quiet.
type GooseLogger struct {
	logger *zerolog.Logger
}

func (g *GooseLogger) Fatalf(format string, v ...any) {
	g.logger.Fatal().Str("component", "migrations").Msg(line(format, v))
}

func (g *GooseLogger) Printf(format string, v ...any) {
	g.logger.Debug().Str("component", "migrations").Msg(line(format, v))
}

func line(format string, v []any) string {
	return strings.TrimSpace(fmt.Sprintf(format, v...))
}

func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return &GooseLogger{
		logger: FromCtx(ctx),
	}
}
