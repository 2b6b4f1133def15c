package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/studyhub-ai/studyhub-backend/internal/domain"
	"github.com/studyhub-ai/studyhub-backend/internal/middleware"
	"github.com/studyhub-ai/studyhub-backend/internal/port"
	"github.com/studyhub-ai/studyhub-backend/internal/prompt"
	"github.com/studyhub-ai/studyhub-backend/internal/service"
)

// InterviewHandler handles the multi-step mock-interview flow.
type InterviewHandler struct {
	ai       port.AIProvider
	recorder *service.Recorder
}

// NewInterviewHandler creates a new interview handler.
func NewInterviewHandler(ai port.AIProvider, recorder *service.Recorder) *InterviewHandler {
	return &InterviewHandler{ai: ai, recorder: recorder}
}

// Register sets up interview routes.
func (h *InterviewHandler) Register(router fiber.Router) {
	router.Post("/interview", h.Interview)
}

// Question is one generated interview question with hints.
type Question struct {
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Hints    []string `json:"hints"`
}

type interviewRequest struct {
	Action              string         `json:"action"`
	JobRole             string         `json:"jobRole"`
	Difficulty          string         `json:"difficulty"`
	ConversationHistory []port.Message `json:"conversationHistory"`
	SessionData         *sessionData   `json:"sessionData"`
}

type sessionData struct {
	Role       string          `json:"role"`
	Difficulty string          `json:"difficulty"`
	Questions  json.RawMessage `json:"questions"`
	Answers    json.RawMessage `json:"answers"`
}

// Interview dispatches on the action discriminator: "start" generates the
// question set, "evaluate" produces feedback on the candidate's answers.
func (h *InterviewHandler) Interview(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var body interviewRequest
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	switch body.Action {
	case "start":
		return h.start(c, uc, body)
	case "evaluate":
		return h.evaluate(c, uc, body)
	default:
		return badRequest(c, "Invalid action")
	}
}

func (h *InterviewHandler) start(c fiber.Ctx, uc *domain.UserContext, body interviewRequest) error {
	if body.JobRole == "" {
		return badRequest(c, "jobRole is required")
	}
	if body.Difficulty == "" {
		body.Difficulty = "medium"
	}

	system, user := prompt.ForInterviewStart(body.JobRole, body.Difficulty)

	ctx, cancel := context.WithTimeout(c.Context(), llmTimeout)
	defer cancel()

	content, err := h.ai.Complete(ctx, port.CompletionRequest{
		Messages: []port.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.8,
		JSONMode:    true,
	})
	if err != nil {
		return respondError(c, err)
	}

	questions, err := parseQuestions(content)
	if err != nil {
		return respondError(c, fmt.Errorf("parse interview questions: %w", err))
	}

	h.recorder.RecordInterviewStart(c.Context(), uc)

	return c.JSON(fiber.Map{"questions": questions})
}

func (h *InterviewHandler) evaluate(c fiber.Ctx, uc *domain.UserContext, body interviewRequest) error {
	messages := make([]port.Message, 0, len(body.ConversationHistory)+1)
	messages = append(messages, port.Message{Role: "system", Content: prompt.InterviewEvaluateSystem})
	messages = append(messages, body.ConversationHistory...)

	ctx, cancel := context.WithTimeout(c.Context(), llmTimeout)
	defer cancel()

	feedback, err := h.ai.Complete(ctx, port.CompletionRequest{
		Messages:    messages,
		Temperature: 0.7,
	})
	if err != nil {
		return respondError(c, err)
	}

	if body.SessionData != nil {
		summary, _ := json.Marshal(map[string]string{"summary": feedback})
		h.recorder.RecordInterviewSession(c.Context(), uc, &domain.InterviewSession{
			Role:       body.SessionData.Role,
			Difficulty: body.SessionData.Difficulty,
			Questions:  body.SessionData.Questions,
			Answers:    body.SessionData.Answers,
			Feedback:   summary,
			Score:      service.ScoreFromFeedback(feedback),
		})
	}

	return c.JSON(fiber.Map{"feedback": feedback})
}

// parseQuestions decodes the model's JSON question set. JSON mode usually
// yields a bare array, but some models wrap it in an object keyed by
// "questions"; both forms are accepted.
func parseQuestions(content string) ([]Question, error) {
	var questions []Question
	if err := json.Unmarshal([]byte(content), &questions); err == nil {
		return questions, nil
	}

	var wrapped struct {
		Questions []Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content), &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Questions == nil {
		return nil, fmt.Errorf("no questions in response")
	}
	return wrapped.Questions, nil
}
