// ABOUTME: Turn represents one message in a conversation's history
// ABOUTME: Immutable once appended to session memory
package models

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single user or assistant message.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
