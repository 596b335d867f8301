package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/tripsmith/internal/config"
	"github.com/sandevgo/tripsmith/internal/providers/llm"
)

var errNoListing = errors.New("provider does not list models")

// ModelLoader fetches the models offered by the provider described by vars.
type ModelLoader func(ctx context.Context, vars map[string]string) ([]llm.ModelInfo, error)

// ModelStep lets the user pick a model from the provider's listing.
// When the listing is unavailable it falls back to typing the model name.
type ModelStep struct {
	list     list.Model
	input    textinput.Model
	load     ModelLoader
	loading  bool
	fetching bool // Ensures we only trigger the API call once
	manual   bool
	err      error
}

func NewModelStep() Step {
	return newModelStep(loadModels)
}

func newModelStep(load ModelLoader) *ModelStep {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select model"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	ti := textinput.New()
	ti.Placeholder = "llama3"
	ti.Width = 50

	return &ModelStep{
		list:    l,
		input:   ti,
		load:    load,
		loading: true,
	}
}

func loadModels(ctx context.Context, vars map[string]string) ([]llm.ModelInfo, error) {
	cfg, err := config.LoadProviderConfig(env.Options{Environment: vars})
	if err != nil {
		return nil, err
	}
	provider, err := llm.NewProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if closer, ok := provider.(io.Closer); ok {
		defer closer.Close()
	}
	lister, ok := provider.(llm.ModelLister)
	if !ok {
		return nil, errNoListing
	}
	return lister.Models(ctx)
}

func (s *ModelStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	// 1. Trigger fetch once when we enter the step
	if s.loading && !s.fetching {
		s.fetching = true
		vars := make(map[string]string, len(state.EnvVars))
		for k, v := range state.EnvVars {
			vars[k] = v
		}

		return s, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			models, err := s.load(ctx, vars)
			if err != nil {
				return errMsg(err)
			}

			items := make([]list.Item, 0, len(models))
			for _, mod := range models {
				title := mod.Name
				if title == "" {
					title = mod.ID
				}
				items = append(items, item{
					id:    mod.ID,
					title: title,
					desc:  fmt.Sprintf("ID: %s", mod.ID),
				})
			}
			return modelsMsg(items)
		}
	}

	s.list.SetSize(width, height-4)

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case modelsMsg:
		s.loading = false
		if len(msg) == 0 {
			return s, s.switchToManual(nil)
		}
		s.list.SetItems(msg)
		return s, nil

	case errMsg:
		s.loading = false
		return s, s.switchToManual(msg)

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		if s.manual {
			if msg.String() == "enter" {
				name := strings.TrimSpace(s.input.Value())
				if name == "" {
					return s, nil
				}
				state.EnvVars["TRIP_LLM_MODEL"] = name
				return nil, nil
			}
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}

		if msg.String() == "enter" {
			wasFiltering := s.list.FilterState() == list.Filtering
			s.list, cmd = s.list.Update(msg)

			if wasFiltering || s.list.FilterState() == list.Filtering {
				return s, cmd
			}

			if i, ok := s.list.SelectedItem().(item); ok {
				state.EnvVars["TRIP_LLM_MODEL"] = i.id
				return nil, nil
			}
			return s, cmd
		}
	}

	if s.manual {
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) switchToManual(err error) tea.Cmd {
	s.manual = true
	s.err = err
	s.input.Focus()
	return textinput.Blink
}

func (s *ModelStep) View(state *InstallState) string {
	if s.loading {
		return fmt.Sprintf("Fetching models from %s...\n", state.Provider())
	}
	if s.manual {
		var b strings.Builder
		if s.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Could not list models: %v", s.err)) + "\n\n")
		}
		b.WriteString("Enter the model name:\n\n" + s.input.View() + "\n\n(press enter to confirm)\n")
		return b.String()
	}
	return s.list.View()
}
