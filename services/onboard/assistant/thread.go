package assistant

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"

	"github.com/Fasscorp/Fassimo/pkg/utils"
)

func (s *Service) NewThread(ctx context.Context) (openai.Thread, error) {
	return s.client.CreateThread(ctx, openai.ThreadRequest{})
}

func (s *Service) SendMessage(ctx context.Context, threadID, content string) (openai.Message, error) {
	return s.client.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    openai.ChatMessageRoleUser,
		Content: content,
	})
}

// CreateRun starts a run against the thread. The tools field is left out
// entirely when the toolset is empty: some providers reject an empty list.
func (s *Service) CreateRun(ctx context.Context, threadID, assistantID string, tools []openai.Tool) (openai.Run, error) {
	req := openai.RunRequest{
		AssistantID: assistantID,
	}
	if len(tools) > 0 {
		req.Tools = tools
	}
	return s.client.CreateRun(ctx, threadID, req)
}

func (s *Service) RetrieveRun(ctx context.Context, threadID, runID string) (openai.Run, error) {
	return s.client.RetrieveRun(ctx, threadID, runID)
}

func (s *Service) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []openai.ToolOutput) (openai.Run, error) {
	return s.client.SubmitToolOutputs(ctx, threadID, runID, openai.SubmitToolOutputsRequest{
		ToolOutputs: outputs,
	})
}

// ListMessages returns the newest messages on the thread, newest first.
func (s *Service) ListMessages(ctx context.Context, threadID string, limit int) (openai.MessagesList, error) {
	return s.client.ListMessage(ctx, threadID, &limit, utils.GetPointer("desc"), nil, nil)
}

// Completion runs a plain one-shot chat completion, used by the legacy ask
// endpoint that predates the assistant threads.
func (s *Service) Completion(ctx context.Context, message string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
