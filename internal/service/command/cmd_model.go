package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/internal/providers/llm"
)

type ModelCommand struct {
	cfg       core.ProviderConfig
	lister    llm.ModelLister
	formatter *ResponseFormatter
}

// NewModelCommand accepts a nil lister when the provider cannot enumerate models.
func NewModelCommand(cfg core.ProviderConfig, lister llm.ModelLister) *ModelCommand {
	return &ModelCommand{
		cfg:       cfg,
		lister:    lister,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModelCommand) Name() string {
	return "model"
}

func (c *ModelCommand) Description() string {
	return "Show the current model, `/model list` to see available ones"
}

func (c *ModelCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Current Model"),
			c.formatter.Label("Provider", c.cfg.GetProvider())+c.formatter.Label("Model", c.cfg.GetModel()),
			c.formatter.Usage("/model list"),
		), nil
	}

	if args[0] != "list" {
		return c.formatter.Usage("/model list"), nil
	}
	if c.lister == nil {
		return "", fmt.Errorf("provider %s cannot list models", c.cfg.GetProvider())
	}

	models, err := c.lister.Models(ctx)
	if err != nil {
		return "", fmt.Errorf("list models: %w", err)
	}
	items := make([]string, 0, len(models))
	for _, m := range models {
		item := m.ID
		if m.ID == c.cfg.GetModel() {
			item += " (current)"
		}
		items = append(items, item)
	}
	return c.formatter.Combine(c.formatter.Info("Available Models"), c.formatter.List(items)), nil
}
