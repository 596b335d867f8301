package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/chzyer/readline"
	"github.com/sandevgo/tripsmith/internal/config"
	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/internal/service/session"
	"github.com/sandevgo/tripsmith/internal/service/ui"
	"github.com/sandevgo/tripsmith/pkg/log"
)

type Responder interface {
	Respond(ctx context.Context, sess *session.Session, text string) (string, error)
}

type LineReader interface {
	Readline() (string, error)
}

type Renderer interface {
	Render(markdown string) (string, error)
}

type ReadLine struct {
	responder Responder
	sessions  *session.Manager
	commands  core.CmdRouter
	renderer  Renderer
	rl        *readline.Instance
}

func NewReadLine(
	cfg *config.AppConfig,
	responder Responder,
	sessions *session.Manager,
	commands core.CmdRouter,
) (*ReadLine, error) {
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ui.Prompt("You › "),
		HistoryFile:     cfg.GetHistoryFilePath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		rl.Close()
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return newReadLine(responder, sessions, commands, renderer, rl), nil
}

func newReadLine(responder Responder, sessions *session.Manager, commands core.CmdRouter, renderer Renderer, rl *readline.Instance) *ReadLine {
	return &ReadLine{
		responder: responder,
		sessions:  sessions,
		commands:  commands,
		renderer:  renderer,
		rl:        rl,
	}
}

func (r *ReadLine) Start(ctx context.Context) error {
	fmt.Fprintln(r.rl.Stdout(), ui.Banner(core.AppName+" • type 'exit' to quit, /help for commands"))
	return r.loop(ctx, r.rl, r.rl.Stdout())
}

func (r *ReadLine) loop(ctx context.Context, in LineReader, out io.Writer) error {
	logger := log.FromCtx(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := in.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if isExit(line) {
			return nil
		}
		if line == "" {
			continue
		}

		if reply, handled := r.commands.Execute(ctx, line); handled {
			r.print(out, reply)
			continue
		}

		reply, err := r.responder.Respond(ctx, r.sessions.Current(), line)
		if err != nil {
			logger.Error().Err(err).Msg("turn failed")
			fmt.Fprintln(out, ui.Error(fmt.Sprintf("Error: %v", err)))
			continue
		}

		fmt.Fprintln(out, ui.Speaker(core.AppName+":"))
		r.print(out, reply)
	}
}

func (r *ReadLine) print(out io.Writer, markdown string) {
	if r.renderer != nil {
		if rendered, err := r.renderer.Render(markdown); err == nil {
			fmt.Fprint(out, rendered)
			return
		}
	}
	fmt.Fprintln(out, markdown)
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	r.sessions.Close()
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

func isExit(line string) bool {
	line = strings.TrimSpace(line)
	return strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit")
}
