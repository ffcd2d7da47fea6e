package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Fasscorp/Fassimo/services/onboard/tools"
)

// AssistantClient is the slice of the provider API the orchestrator needs.
type AssistantClient interface {
	NewThread(ctx context.Context) (openai.Thread, error)
	SendMessage(ctx context.Context, threadID, content string) (openai.Message, error)
	CreateRun(ctx context.Context, threadID, assistantID string, toolset []openai.Tool) (openai.Run, error)
	RetrieveRun(ctx context.Context, threadID, runID string) (openai.Run, error)
	SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []openai.ToolOutput) (openai.Run, error)
	ListMessages(ctx context.Context, threadID string, limit int) (openai.MessagesList, error)
}

const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultMaxAttempts  = 60

	replyPageSize = 10

	replyNoText           = "The assistant finished but produced no reply text."
	replyTimeout          = "The assistant timed out before replying. Please try again."
	replyUnresolvedAction = "The assistant is still waiting on an action that could not be completed."
)

// Orchestrator drives one user message through a full assistant run: thread
// create or reuse, message append, run creation, status polling, tool-call
// bridging and final reply extraction.
type Orchestrator struct {
	logger   *zap.Logger
	client   AssistantClient
	registry *tools.Registry

	pollInterval time.Duration
	maxAttempts  int
}

func New(logger *zap.Logger, client AssistantClient, registry *tools.Registry, pollInterval time.Duration, maxAttempts int) *Orchestrator {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Orchestrator{
		logger:       logger.Named("orchestrator"),
		client:       client,
		registry:     registry,
		pollInterval: pollInterval,
		maxAttempts:  maxAttempts,
	}
}

type Result struct {
	Reply    string
	ThreadID string
}

// Execute runs one conversational turn. An empty threadID starts a new thread;
// the id in the result lets the caller continue the same conversation, and is
// set even when the reply is a fallback.
func (o *Orchestrator) Execute(ctx context.Context, threadID, message, assistantID string, toolset []openai.Tool) (Result, error) {
	if threadID == "" {
		thread, err := o.client.NewThread(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("creating thread: %w", err)
		}
		threadID = thread.ID
		o.logger.Info("created thread", zap.String("thread_id", threadID))
	}

	if _, err := o.client.SendMessage(ctx, threadID, message); err != nil {
		return Result{}, fmt.Errorf("appending user message: %w", err)
	}

	run, err := o.client.CreateRun(ctx, threadID, assistantID, toolset)
	if err != nil {
		return Result{}, fmt.Errorf("creating run: %w", err)
	}

	run, timedOut, err := o.poll(ctx, threadID, run)
	if err != nil {
		return Result{}, err
	}

	reply, err := o.resolveReply(ctx, threadID, run, timedOut)
	if err != nil {
		return Result{}, err
	}

	return Result{Reply: reply, ThreadID: threadID}, nil
}

// poll waits the run out. Each iteration sleeps one interval and re-fetches
// the run; a requires_action status is answered with one batched tool-output
// submission whose resulting run replaces the current one. The loop never
// exits early on a submission response: the next iteration's status check
// decides. The bool result reports hitting the attempt cap without reaching a
// terminal status.
func (o *Orchestrator) poll(ctx context.Context, threadID string, run openai.Run) (openai.Run, bool, error) {
	for attempt := 0; attempt < o.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return run, false, ctx.Err()
		case <-time.After(o.pollInterval):
		}

		var err error
		run, err = o.client.RetrieveRun(ctx, threadID, run.ID)
		if err != nil {
			return run, false, fmt.Errorf("retrieving run: %w", err)
		}

		if run.Status == openai.RunStatusRequiresAction &&
			run.RequiredAction != nil &&
			run.RequiredAction.Type == openai.RequiredActionTypeSubmitToolOutputs {
			run, err = o.submitToolOutputs(ctx, threadID, run)
			if err != nil {
				return run, false, err
			}
			continue
		}

		if isTerminal(run.Status) {
			return run, false, nil
		}
	}

	o.logger.Warn("run polling hit the attempt cap",
		zap.String("thread_id", threadID),
		zap.String("run_id", run.ID),
		zap.String("status", string(run.Status)))
	return run, true, nil
}

// submitToolOutputs dispatches every pending tool call and submits the whole
// batch in one call. Every call id gets exactly one output; dispatch failures
// are already shaped into error outputs by the registry.
func (o *Orchestrator) submitToolOutputs(ctx context.Context, threadID string, run openai.Run) (openai.Run, error) {
	calls := run.RequiredAction.SubmitToolOutputs.ToolCalls
	outputs := make([]openai.ToolOutput, 0, len(calls))
	for _, call := range calls {
		if call.Type != openai.ToolTypeFunction {
			continue
		}
		o.logger.Info("dispatching tool call",
			zap.String("thread_id", threadID),
			zap.String("run_id", run.ID),
			zap.String("tool", call.Function.Name),
			zap.String("tool_call_id", call.ID))
		outputs = append(outputs, o.registry.Dispatch(ctx, call, threadID))
	}

	updated, err := o.client.SubmitToolOutputs(ctx, threadID, run.ID, outputs)
	if err != nil {
		return run, fmt.Errorf("submitting tool outputs: %w", err)
	}
	return updated, nil
}

func (o *Orchestrator) resolveReply(ctx context.Context, threadID string, run openai.Run, timedOut bool) (string, error) {
	if timedOut {
		return replyTimeout, nil
	}

	switch run.Status {
	case openai.RunStatusCompleted:
		return o.latestAssistantReply(ctx, threadID)
	case openai.RunStatusRequiresAction:
		// the poll loop should have consumed these; reaching here is a defect
		o.logger.Error("run exited polling with an unresolved required action",
			zap.String("thread_id", threadID),
			zap.String("run_id", run.ID))
		return replyUnresolvedAction, nil
	default:
		reply := fmt.Sprintf("The assistant run ended with status %q.", run.Status)
		if run.LastError != nil && run.LastError.Message != "" {
			reply += " " + run.LastError.Message
		}
		return reply, nil
	}
}

// latestAssistantReply extracts the text of the newest assistant-authored
// message on the thread.
func (o *Orchestrator) latestAssistantReply(ctx context.Context, threadID string) (string, error) {
	msgs, err := o.client.ListMessages(ctx, threadID, replyPageSize)
	if err != nil {
		return "", fmt.Errorf("listing thread messages: %w", err)
	}

	for _, msg := range msgs.Messages {
		if msg.Role != openai.ChatMessageRoleAssistant {
			continue
		}
		var text string
		for _, content := range msg.Content {
			if content.Text != nil {
				if text != "" {
					text += "\n"
				}
				text += content.Text.Value
			}
		}
		if text != "" {
			return text, nil
		}
	}

	o.logger.Warn("completed run produced no assistant text", zap.String("thread_id", threadID))
	return replyNoText, nil
}

func isTerminal(status openai.RunStatus) bool {
	switch status {
	case openai.RunStatusCompleted,
		openai.RunStatusFailed,
		openai.RunStatusCancelled,
		openai.RunStatusExpired:
		return true
	default:
		return false
	}
}
