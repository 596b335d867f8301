package core

const (
	AppName          = "TripSmith"
	AppUserAgent     = "TripSmith/0.1"
	AppRepositoryURL = "https://github.com/sandevgo/tripsmith"
	AppVersion       = "0.1.0"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	// Source is set on grounding messages produced by the dispatcher and never sent over the wire.
	Source Source `json:"-"`
}

func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// RefinementDecision is computed once per turn and consumed by the dispatcher.
type RefinementDecision struct {
	Refine    bool
	Rationale string
}
