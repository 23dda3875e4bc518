package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"skysage.app/models"
	"skysage.app/pkg/errors"
	"skysage.app/pkg/validation"
	"skysage.app/providers"
)

// timestampLayout renders wall-clock times the way the transcript shows them.
const timestampLayout = "3:04 PM"

// AssistantSession owns one chat transcript. At most one provider call is
// outstanding at a time; a second submit while a reply is pending is
// rejected. The assistant reply reuses the timestamp captured at submit
// time, not the arrival time.
type AssistantSession struct {
	generator providers.TextGenerator
	tone      func() models.Tone
	now       func() time.Time

	mu       sync.Mutex
	messages []models.ChatMessage
	awaiting bool
}

// NewAssistantSession seeds a session with the tone-appropriate welcome
// message. tone is read live on every submit.
func NewAssistantSession(generator providers.TextGenerator, tone func() models.Tone) *AssistantSession {
	session := &AssistantSession{
		generator: generator,
		tone:      tone,
		now:       time.Now,
	}
	session.messages = []models.ChatMessage{
		{
			ID:        1,
			Sender:    models.SenderAssistant,
			Text:      welcomeMessage(tone()),
			Timestamp: session.now().Format(timestampLayout),
		},
	}
	return session
}

// Submit appends the user message, queries the generative provider and
// appends its reply. Provider failures degrade to a fixed fallback reply;
// they are never surfaced as errors.
func (s *AssistantSession) Submit(ctx context.Context, text string) (*models.ChatMessage, error) {
	trimmed, ok := validation.TrimAndValidate(text)
	if !ok {
		return nil, errors.NewValidationError("message cannot be empty")
	}

	s.mu.Lock()
	if s.awaiting {
		s.mu.Unlock()
		return nil, errors.NewRateLimitedError("a reply is still pending")
	}
	s.awaiting = true

	timestamp := s.now().Format(timestampLayout)
	s.messages = append(s.messages, models.ChatMessage{
		ID:        len(s.messages) + 1,
		Sender:    models.SenderUser,
		Text:      trimmed,
		Timestamp: timestamp,
	})
	prompt := fmt.Sprintf(promptTemplate, toneInstruction(s.tone()), trimmed)
	s.mu.Unlock()

	replyText := s.generate(ctx, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.awaiting = false
	reply := models.ChatMessage{
		ID:        len(s.messages) + 1,
		Sender:    models.SenderAssistant,
		Text:      replyText,
		Timestamp: timestamp,
	}
	s.messages = append(s.messages, reply)
	return &reply, nil
}

func (s *AssistantSession) generate(ctx context.Context, prompt string) string {
	reply, err := s.generator.GenerateReply(ctx, prompt)
	if err != nil {
		slog.Error("Generative provider error", "error", err)
		return errorReplyFallback
	}
	if reply == "" {
		return emptyReplyFallback
	}
	return reply
}

// ToneChanged refreshes the welcome message when the transcript still
// contains only the seed, keeping its timestamp. A grown transcript is left
// untouched; the new tone only affects future prompts and suggestions.
func (s *AssistantSession) ToneChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.messages) == 1 && s.messages[0].ID == 1 {
		s.messages[0].Text = welcomeMessage(s.tone())
	}
}

// Transcript returns a copy of the messages in order.
func (s *AssistantSession) Transcript() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// SuggestedQuestions returns the suggestion list for the current tone.
// Selecting a suggestion is equivalent to typing it and submitting.
func (s *AssistantSession) SuggestedQuestions() []string {
	return SuggestedQuestionsFor(s.tone())
}
