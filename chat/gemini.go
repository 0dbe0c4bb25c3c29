package chat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrLLMNotConfigured is returned when GEMINI_API_KEY is unset. Callers fall
// back to a canned reply; the chat endpoint never fails because of the LLM.
var ErrLLMNotConfigured = errors.New("GEMINI_API_KEY not configured")

// Reply asks Gemini for a free-form answer when no intent matched. One
// attempt, no retries.
func Reply(ctx context.Context, userName, userRole, message, sessionContext string) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", ErrLLMNotConfigured
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-pro")
	prompt := fmt.Sprintf(`You are an assistant for a doctor appointment system.
Current user: %s (role: %s).
Patients can check availability and book appointments; doctors can ask for reports.
Context from previous conversation: %s

User message: %s`, userName, userRole, sessionContext, message)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from model")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}
