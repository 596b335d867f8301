package command

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/internal/service/session"
)

type ResetCommand struct {
	sessions  *session.Manager
	formatter *ResponseFormatter
}

func NewResetCommand(sessions *session.Manager) *ResetCommand {
	return &ResetCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Description() string {
	return "Forget this conversation and start over"
}

func (c *ResetCommand) Execute(_ context.Context, _ []string) (string, error) {
	sess := c.sessions.Reset()
	return c.formatter.Success(fmt.Sprintf("New conversation `%s`", sess.ID())), nil
}

const defaultHistoryLimit = 5

type HistoryCommand struct {
	sessions  *session.Manager
	journal   core.TurnJournal
	formatter *ResponseFormatter
}

// NewHistoryCommand accepts a nil journal; recent turns are then not listed.
func NewHistoryCommand(sessions *session.Manager, journal core.TurnJournal) *HistoryCommand {
	return &HistoryCommand{
		sessions:  sessions,
		journal:   journal,
		formatter: NewResponseFormatter(),
	}
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return "Show the current conversation"
}

func (c *HistoryCommand) Execute(ctx context.Context, args []string) (string, error) {
	limit := defaultHistoryLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return c.formatter.Usage("/history [count]"), nil
		}
		limit = n
	}

	sess := c.sessions.Current()
	out := c.formatter.Combine(
		c.formatter.Info("Conversation"),
		c.formatter.Label("Session", sess.ID())+
			c.formatter.Label("Started", sess.CreatedAt().Format(time.DateTime))+
			c.formatter.Label("Turns", strconv.Itoa(sess.Turns()))+
			c.formatter.Label("Messages", strconv.Itoa(sess.Len())),
	)
	if c.journal == nil {
		return out, nil
	}

	recs, err := c.journal.ListTurns(ctx, sess.ID(), limit)
	if err != nil {
		return "", fmt.Errorf("read journal: %w", err)
	}
	if len(recs) == 0 {
		return out, nil
	}

	items := make([]string, 0, len(recs))
	for _, r := range recs {
		items = append(items, c.formatter.Turn(r))
	}
	return c.formatter.Combine(out, c.formatter.Info("Recent turns"), c.formatter.List(items)), nil
}
