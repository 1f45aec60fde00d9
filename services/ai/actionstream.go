package ai

import (
	"encoding/json"
	"strings"

	"matero/models"
)

const (
	actionOpen  = "[ACTION_JSON]"
	actionClose = "[/ACTION_JSON]"
)

// actionStream splits an incremental completion stream into two channels:
// display text emitted through onText, and the payload between action markers
// captured for later parsing. Markers may arrive split across chunk
// boundaries; text that could still turn out to be a marker prefix is held
// back until the next chunk or Close decides it.
type actionStream struct {
	onText   func(string)
	pending  string
	payload  strings.Builder
	inAction bool
}

func newActionStream(onText func(string)) *actionStream {
	return &actionStream{onText: onText}
}

// Write feeds one raw chunk into the parser.
func (s *actionStream) Write(chunk string) {
	s.pending += chunk

	for {
		if s.inAction {
			if i := strings.Index(s.pending, actionClose); i >= 0 {
				s.payload.WriteString(s.pending[:i])
				s.pending = s.pending[i+len(actionClose):]
				s.inAction = false
				continue
			}
			hold := overlap(s.pending, actionClose)
			s.payload.WriteString(s.pending[:len(s.pending)-hold])
			s.pending = s.pending[len(s.pending)-hold:]
			return
		}

		if i := strings.Index(s.pending, actionOpen); i >= 0 {
			s.emit(s.pending[:i])
			s.pending = s.pending[i+len(actionOpen):]
			s.inAction = true
			continue
		}
		hold := overlap(s.pending, actionOpen)
		s.emit(s.pending[:len(s.pending)-hold])
		s.pending = s.pending[len(s.pending)-hold:]
		return
	}
}

// Close flushes held-back text and returns the parsed action, if the stream
// carried a complete, valid payload. An opened-but-never-closed marker simply
// yields whatever arrived before EOF; invalid JSON yields no action.
func (s *actionStream) Close() *models.AssistantAction {
	if s.inAction {
		s.payload.WriteString(s.pending)
	} else {
		s.emit(s.pending)
	}
	s.pending = ""
	return parseAction(s.payload.String())
}

func (s *actionStream) emit(text string) {
	if text != "" && s.onText != nil {
		s.onText(text)
	}
}

// overlap returns the length of the longest suffix of text that is a proper
// prefix of marker.
func overlap(text, marker string) int {
	max := len(marker) - 1
	if max > len(text) {
		max = len(text)
	}
	for n := max; n > 0; n-- {
		if strings.HasPrefix(marker, text[len(text)-n:]) {
			return n
		}
	}
	return 0
}

func parseAction(payload string) *models.AssistantAction {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil
	}
	var action models.AssistantAction
	if err := json.Unmarshal([]byte(payload), &action); err != nil {
		return nil
	}
	return &action
}

// ExtractAction strips action markers from a fully assembled reply and parses
// the embedded payload. Used for single-shot replies that arrive whole.
func ExtractAction(text string) (display string, action *models.AssistantAction) {
	var sb strings.Builder
	s := newActionStream(func(t string) { sb.WriteString(t) })
	s.Write(text)
	action = s.Close()
	return sb.String(), action
}
