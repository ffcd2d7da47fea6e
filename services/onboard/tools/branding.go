package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Fasscorp/Fassimo/pkg/utils"
	"github.com/Fasscorp/Fassimo/services/onboard/model"
	"github.com/Fasscorp/Fassimo/services/onboard/repository"
)

type brandingArgs struct {
	LogoLink          string `json:"logoLink"`
	PrimaryBrandColor string `json:"primaryBrandColor"`
}

const followUpTag = "follow-up"

// NewSaveBrandingData builds the saveBrandingData tool. Branding is keyed by
// thread id since it usually arrives before the customer identifies
// themselves. Each field still missing after the save spawns one open
// follow-up task per conversation.
func NewSaveBrandingData(logger *zap.Logger, brandingRepo repository.Branding, taskRepo repository.Task) Tool {
	logger = logger.Named("save-branding-data")

	return Tool{
		Definition: openai.FunctionDefinition{
			Name:        "saveBrandingData",
			Description: "Saves the customer's branding assets collected so far. Call it even when only some of the fields are known.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"logoLink":          map[string]any{"type": "string", "description": "URL link to the customer logo file (e.g. SVG, PNG)"},
					"primaryBrandColor": map[string]any{"type": "string", "description": "Primary brand color (e.g. hex code like #FFFFFF)"},
				},
			},
		},
		Handler: func(ctx context.Context, args json.RawMessage, inv Invocation) (string, error) {
			var a brandingArgs
			if err := json.Unmarshal(args, &a); err != nil {
				return "", fmt.Errorf("parsing arguments: %w", err)
			}

			err := brandingRepo.Upsert(ctx, model.Branding{
				ThreadID:          inv.ThreadID,
				LogoLink:          a.LogoLink,
				PrimaryBrandColor: a.PrimaryBrandColor,
			})
			if err != nil {
				return "", fmt.Errorf("saving branding record: %w", err)
			}

			var notes []string
			if a.LogoLink == "" {
				if err := ensureFollowUp(ctx, taskRepo, inv.ThreadID, "Collect logo file link from customer"); err != nil {
					return "", fmt.Errorf("creating logo follow-up task: %w", err)
				}
				notes = append(notes, "the logo link is still missing")
			}
			if a.PrimaryBrandColor == "" {
				if err := ensureFollowUp(ctx, taskRepo, inv.ThreadID, "Collect primary brand color from customer"); err != nil {
					return "", fmt.Errorf("creating brand color follow-up task: %w", err)
				}
				notes = append(notes, "the primary brand color is still missing")
			}

			logger.Info("saved branding record",
				zap.String("thread_id", inv.ThreadID),
				zap.Int("missing_fields", len(notes)))

			message := "Okay, I have saved that branding information."
			if len(notes) > 0 {
				message += " Note: " + strings.Join(notes, " and ") + "."
			}

			return Result{Success: true, Message: message}.JSON(), nil
		},
	}
}

// ensureFollowUp creates an open follow-up task for the thread unless an
// identical one already exists. The conditional insert makes the dedup hold
// even across concurrent requests on the same thread.
func ensureFollowUp(ctx context.Context, taskRepo repository.Task, threadID, name string) error {
	_, err := taskRepo.CreateFollowUpOnce(ctx, &model.Task{
		Name:     name,
		Tags:     datatypes.JSONSlice[string]{followUpTag},
		ThreadID: utils.GetPointer(threadID),
		Order:    time.Now().UnixMilli(),
	})
	return err
}
