package command

import (
	"fmt"
	"strings"

	"github.com/sandevgo/tripsmith/internal/core"
)

const turnPreviewRunes = 60

// ResponseFormatter renders command output as markdown for the REPL renderer.
type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

func (f *ResponseFormatter) Info(title string) string {
	return fmt.Sprintf("**%s**\n", title)
}

func (f *ResponseFormatter) Success(message string) string {
	return fmt.Sprintf("✅ %s\n", message)
}

func (f *ResponseFormatter) Error(err error) string {
	return fmt.Sprintf("❌ %s\n", err.Error())
}

func (f *ResponseFormatter) Label(label, value string) string {
	return fmt.Sprintf("**%s**  ›  `%s`\n", label, value)
}

func (f *ResponseFormatter) Usage(command string) string {
	return fmt.Sprintf("**Usage**: `%s`\n", command)
}

func (f *ResponseFormatter) List(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("› " + item + "\n")
	}
	return sb.String()
}

// Turn is a one-line journal summary: index, user text preview, intents, grounding sources.
func (f *ResponseFormatter) Turn(rec core.TurnRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d %s", rec.TurnIndex, preview(rec.UserText))
	if len(rec.Intents) > 0 {
		sb.WriteString(" · " + strings.Join(rec.Intents, ", "))
	}
	if len(rec.Sources) > 0 {
		names := make([]string, len(rec.Sources))
		for i, s := range rec.Sources {
			names[i] = string(s)
		}
		sb.WriteString(" · data: " + strings.Join(names, ", "))
	}
	if rec.Refinement {
		sb.WriteString(" · refined")
	}
	return sb.String()
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.Join(sections, "\n")
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= turnPreviewRunes {
		return s
	}
	return string(r[:turnPreviewRunes]) + "…"
}
