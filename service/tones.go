package service

import "skysage.app/models"

// Fallback replies shown when the generative provider fails or returns
// nothing. Failures are never surfaced to the chat view as errors.
const (
	emptyReplyFallback = "Sorry, I couldn't generate a response. Please try again."
	errorReplyFallback = "Sorry, I encountered an error while processing your request. Please try again later."
)

const promptTemplate = `You are SkySage, a helpful weather and location assistant.

When users ask about weather in a specific location:
1. Give the current weather information about the location.
2. Offer to help with other questions the user might have about the location or general weather topics.

TONE INSTRUCTIONS: %s

Keep responses conversational, informative and engaging. Always provide some useful information rather than just stating limitations.

Here's the user query: %s`

var toneInstructions = map[models.Tone]string{
	models.ToneProfessional: "Use professional language. Be formal, precise and thorough in your responses. Use industry-appropriate terminology when relevant. Maintain a respectful and business-like tone.",
	models.ToneFriendly:     "Be warm, conversational and approachable. Use friendly language with occasional exclamation points! Feel free to use casual expressions and show enthusiasm. Make the user feel like they're talking to a friend.",
	models.ToneConcise:      "Be brief and to the point. Provide only essential information with minimal explanation. Use short sentences and direct language. Avoid unnecessary details or pleasantries.",
	models.ToneCasual:       "Use a relaxed, everyday conversational style. Be helpful and informative while maintaining a casual tone. Feel free to use contractions and common expressions.",
}

var welcomeMessages = map[models.Tone]string{
	models.ToneProfessional: "Good day. I'm your SkySage weather assistant. How may I help you with weather information today?",
	models.ToneFriendly:     "Hey there! I'm your friendly SkySage helper! What would you like to know about the weather?",
	models.ToneConcise:      "SkySage assistant ready. Weather questions?",
	models.ToneCasual:       "Hi there! I'm your SkySage assistant. How can I help you with the weather today?",
}

var suggestedQuestions = map[models.Tone][]string{
	models.ToneProfessional: {
		"What's the forecast for today's commute?",
		"Will weather conditions affect business operations?",
		"What are the expected temperatures for my meeting schedule?",
		"Should I anticipate any weather-related delays?",
	},
	models.ToneFriendly: {
		"Hey! Is it nice outside today?",
		"Should I pack a sweater for tonight?",
		"Any chance of catching some sun this weekend?",
		"Got any fun indoor activity ideas if it rains?",
	},
	models.ToneConcise: {
		"Today's forecast?",
		"Rain today?",
		"Weekend weather?",
		"Temperature high/low?",
	},
	models.ToneCasual: {
		"What should I wear today?",
		"Is it a good day for a picnic?",
		"Will I need an umbrella later?",
		"How's the weekend weather looking?",
	},
}

func toneInstruction(tone models.Tone) string {
	if instruction, ok := toneInstructions[tone]; ok {
		return instruction
	}
	return toneInstructions[models.ToneCasual]
}

func welcomeMessage(tone models.Tone) string {
	if welcome, ok := welcomeMessages[tone]; ok {
		return welcome
	}
	return welcomeMessages[models.ToneCasual]
}

// SuggestedQuestionsFor returns the fixed suggestion list for a tone.
func SuggestedQuestionsFor(tone models.Tone) []string {
	if questions, ok := suggestedQuestions[tone]; ok {
		return questions
	}
	return suggestedQuestions[models.ToneCasual]
}
