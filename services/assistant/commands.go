package assistant

import "strings"

// commandKind is the closed set of global commands the assistant recognizes
// before any step-specific handling. Free text falls through as cmdNone.
type commandKind int

const (
	cmdNone commandKind = iota
	cmdAIOn
	cmdAIOff
	cmdStreamOn
	cmdStreamOff
	cmdEndSession
	cmdNewSession
	cmdCancel
	cmdListMaterials
)

// parseCommand normalizes raw input and maps it onto the command union.
// Matches are exact after trimming and lowercasing; there is no partial
// matching, so "cancel it" is plain text, not a command.
func parseCommand(raw string) commandKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ai on":
		return cmdAIOn
	case "ai off":
		return cmdAIOff
	case "stream on":
		return cmdStreamOn
	case "stream off":
		return cmdStreamOff
	case "end session":
		return cmdEndSession
	case "new session":
		return cmdNewSession
	case "cancel":
		return cmdCancel
	case "list materials":
		return cmdListMaterials
	}
	return cmdNone
}
