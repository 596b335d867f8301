package installer

import "github.com/sandevgo/tripsmith/internal/config"

type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

func (s *InstallState) Provider() string {
	if p := s.EnvVars["TRIP_LLM_PROVIDER"]; p != "" {
		return p
	}
	return config.ProviderOllama
}
