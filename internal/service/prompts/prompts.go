// Package prompts holds the instruction texts layered around every model call.
package prompts

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultCatalog []byte

var ErrMissingPrompt = errors.New("prompt catalog entry is empty")

type Catalog struct {
	System             string `yaml:"system"`
	ToneFewshots       string `yaml:"tone_fewshots"`
	RouterInstructions string `yaml:"router_instructions"`
	RouterFewshots     string `yaml:"router_fewshots"`
	ToolPolicy         string `yaml:"tool_policy"`
	HiddenScaffold     string `yaml:"hidden_scaffold"`
	ErrorHandling      string `yaml:"error_handling"`
	SelfCheck          string `yaml:"self_check"`
	AnswerStyle        string `yaml:"answer_style"`
	ToolIOTemplates    string `yaml:"tool_io_templates"`
	Refinement         string `yaml:"refinement"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c := &Catalog{}
	if err := yaml.Unmarshal(defaultCatalog, c); err != nil {
		panic(fmt.Sprintf("embedded prompt catalog: %v", err))
	}
	return c
}

// Load returns the embedded catalog with the keys present in the file at path laid over it.
// An empty path yields the embedded catalog.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse prompts file %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) Validate() error {
	entries := map[string]string{
		"system":              c.System,
		"router_instructions": c.RouterInstructions,
		"router_fewshots":     c.RouterFewshots,
		"tool_policy":         c.ToolPolicy,
		"hidden_scaffold":     c.HiddenScaffold,
		"error_handling":      c.ErrorHandling,
		"self_check":          c.SelfCheck,
		"answer_style":        c.AnswerStyle,
		"tool_io_templates":   c.ToolIOTemplates,
		"refinement":          c.Refinement,
	}
	for key, text := range entries {
		if text == "" {
			return fmt.Errorf("%w: %s", ErrMissingPrompt, key)
		}
	}
	return nil
}

// Seed is the persona turn every conversation history starts with.
func (c *Catalog) Seed() string {
	if c.ToneFewshots == "" {
		return c.System
	}
	return c.System + "\n\nAnswer tone examples:\n\n" + c.ToneFewshots
}

// RouterRequest is the classification message appended after the conversation history.
func (c *Catalog) RouterRequest(userText string) string {
	return c.RouterInstructions + "\n\n" + c.RouterFewshots + "\n\nUSER: " + userText + "\nJSON:"
}

// Instructions returns the fixed policy layer placed between grounding and the user message.
// Order matters.
func (c *Catalog) Instructions() []string {
	return []string{
		c.ToolPolicy,
		c.HiddenScaffold,
		c.ErrorHandling,
		c.SelfCheck,
		c.AnswerStyle,
		c.ToolIOTemplates,
	}
}
