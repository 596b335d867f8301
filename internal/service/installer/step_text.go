package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/tripsmith/internal/config"
)

// TextField describes a single value the wizard asks for.
type TextField struct {
	EnvKey      string
	Title       string
	Placeholder string
	Default     string
	Secret      bool
	Optional    bool
}

// TextStep asks for one value. Resolve picks the field from earlier answers;
// returning false skips the step.
type TextStep struct {
	input   textinput.Model
	field   TextField
	resolve func(state *InstallState) (TextField, bool)
	ready   bool
	err     error
}

func NewTextStep(field TextField) Step {
	return NewDynamicTextStep(func(*InstallState) (TextField, bool) { return field, true })
}

func NewDynamicTextStep(resolve func(state *InstallState) (TextField, bool)) Step {
	return &TextStep{resolve: resolve}
}

// NewCredentialStep asks for whatever the chosen provider needs to connect.
func NewCredentialStep() Step {
	return NewDynamicTextStep(func(state *InstallState) (TextField, bool) {
		return credentialField(state.Provider())
	})
}

// NewCustomURLStep runs only for an OpenAI-compatible custom endpoint.
func NewCustomURLStep() Step {
	return NewDynamicTextStep(func(state *InstallState) (TextField, bool) {
		if state.Provider() != config.ProviderCustom {
			return TextField{}, false
		}
		return TextField{
			EnvKey:      "TRIP_CUSTOM_BASE_URL",
			Title:       "OpenAI-compatible base URL",
			Placeholder: "https://api.example.com/v1",
		}, true
	})
}

func credentialField(provider string) (TextField, bool) {
	switch provider {
	case config.ProviderOllama:
		return TextField{
			EnvKey:  "OLLAMA_BASE_URL",
			Title:   "Ollama base URL",
			Default: "http://localhost:11434",
		}, true
	case config.ProviderOpenAI:
		return TextField{EnvKey: "OPENAI_API_KEY", Title: "OpenAI API key", Placeholder: "sk-...", Secret: true}, true
	case config.ProviderOpenRouter:
		return TextField{EnvKey: "OPENROUTER_API_KEY", Title: "OpenRouter API key", Placeholder: "sk-or-v1-...", Secret: true}, true
	case config.ProviderAnthropic:
		return TextField{EnvKey: "ANTHROPIC_API_KEY", Title: "Anthropic API key", Placeholder: "sk-ant-...", Secret: true}, true
	case config.ProviderGemini:
		return TextField{EnvKey: "GEMINI_API_KEY", Title: "Gemini API key", Placeholder: "AIza...", Secret: true}, true
	case config.ProviderCustom:
		return TextField{EnvKey: "TRIP_CUSTOM_API_KEY", Title: "API key for the custom endpoint", Secret: true, Optional: true}, true
	default:
		return TextField{}, false
	}
}

func (s *TextStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *TextStep) prepare(state *InstallState) bool {
	field, ok := s.resolve(state)
	if !ok {
		return false
	}
	s.field = field

	s.input = textinput.New()
	s.input.Focus()
	s.input.CharLimit = 255
	s.input.Width = 50
	s.input.Placeholder = field.Placeholder
	if field.Placeholder == "" && field.Default != "" {
		s.input.Placeholder = field.Default
	}
	if field.Secret {
		s.input.EchoMode = textinput.EchoPassword
		s.input.EchoCharacter = '•'
	}
	s.ready = true
	return true
}

func (s *TextStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.ready {
		if !s.prepare(state) {
			return nil, nil
		}
		return s, textinput.Blink
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		value := strings.TrimSpace(s.input.Value())
		if value == "" {
			value = s.field.Default
		}
		if value == "" && !s.field.Optional {
			s.err = fmt.Errorf("%s is required", s.field.Title)
			return s, nil
		}
		if value != "" {
			state.EnvVars[s.field.EnvKey] = value
		}
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TextStep) View(state *InstallState) string {
	if !s.ready {
		return "Loading...\n"
	}

	hint := ""
	switch {
	case s.field.Optional:
		hint = " (optional, press Enter to skip)"
	case s.field.Default != "":
		hint = fmt.Sprintf(" (Enter keeps %s)", s.field.Default)
	}

	view := fmt.Sprintf("Enter %s%s:\n\n%s\n\n", s.field.Title, hint, s.input.View())
	if s.err != nil {
		view += errorStyle.Render(s.err.Error()) + "\n\n"
	}
	return view + "(press enter to confirm)\n"
}
