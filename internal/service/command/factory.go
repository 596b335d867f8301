package command

import (
	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/internal/providers/llm"
	"github.com/sandevgo/tripsmith/internal/service/session"
)

func NewCommands(
	cfg core.ProviderConfig,
	ai core.AIProvider,
	sessions *session.Manager,
	journal core.TurnJournal,
) []core.Command {
	lister, _ := ai.(llm.ModelLister)
	return []core.Command{
		NewResetCommand(sessions),
		NewHistoryCommand(sessions, journal),
		NewModelCommand(cfg, lister),
	}
}
