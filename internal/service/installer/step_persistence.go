package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/tripsmith/internal/config"
	envfile "github.com/sandevgo/tripsmith/pkg/env"
)

// savedEnv is what ends up in the runtime .env file.
type savedEnv struct {
	Provider           config.ProviderConfig
	HomeCity           string `env:"TRIP_HOME_CITY"`
	TicketmasterAPIKey string `env:"TICKETMASTER_API_KEY"`
}

// RenderEnv validates the collected answers and renders them as .env content.
func RenderEnv(vars map[string]string) (string, error) {
	provider, err := config.LoadProviderConfig(env.Options{Environment: vars})
	if err != nil {
		return "", err
	}
	return envfile.MarshalEnv(&savedEnv{
		Provider:           *provider,
		HomeCity:           vars["TRIP_HOME_CITY"],
		TicketmasterAPIKey: vars["TICKETMASTER_API_KEY"],
	})
}

// SaveEnvStep writes the collected configuration to .env file
type SaveEnvStep struct {
	envPath string
	err     error
	saved   bool
}

func NewSaveEnvStep(envPath string) Step {
	return &SaveEnvStep{envPath: envPath}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	if err := s.save(state); err != nil {
		s.err = err
		return s, nil
	}

	s.saved = true
	return nil, nil
}

func (s *SaveEnvStep) save(state *InstallState) error {
	if err := os.MkdirAll(filepath.Dir(s.envPath), 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	if _, err := os.Stat(s.envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", s.envPath)
	}

	content, err := RenderEnv(state.EnvVars)
	if err != nil {
		return err
	}
	return os.WriteFile(s.envPath, []byte(content), 0600)
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}
