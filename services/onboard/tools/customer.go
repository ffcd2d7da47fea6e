package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Fasscorp/Fassimo/services/onboard/model"
	"github.com/Fasscorp/Fassimo/services/onboard/repository"
)

type customerArgs struct {
	CustomerName string `json:"customerName"`
	CompanyName  string `json:"companyName"`
	Email        string `json:"email"`
	ProjectNeeds string `json:"projectNeeds"`
	Timeline     string `json:"timeline"`
	Budget       string `json:"budget"`
}

// NewSaveCustomerData builds the saveCustomerData tool: it persists the
// interview record keyed by email, merging into an existing record when the
// customer talked to us before.
func NewSaveCustomerData(logger *zap.Logger, repo repository.Customer) Tool {
	logger = logger.Named("save-customer-data")

	return Tool{
		Definition: openai.FunctionDefinition{
			Name:        "saveCustomerData",
			Description: "Saves the collected customer information once all required details are gathered.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"customerName": map[string]any{"type": "string", "description": "Full name of the customer"},
					"companyName":  map[string]any{"type": "string", "description": "Company name (optional)"},
					"email":        map[string]any{"type": "string", "description": "Customer email address"},
					"projectNeeds": map[string]any{"type": "string", "description": "Customer project needs"},
					"timeline":     map[string]any{"type": "string", "description": "Project timeline (optional)"},
					"budget":       map[string]any{"type": "string", "description": "Estimated budget (optional)"},
				},
				"required": []string{"customerName", "email", "projectNeeds"},
			},
		},
		Handler: func(ctx context.Context, args json.RawMessage, inv Invocation) (string, error) {
			var a customerArgs
			if err := json.Unmarshal(args, &a); err != nil {
				return "", fmt.Errorf("parsing arguments: %w", err)
			}

			required := []struct{ name, value string }{
				{"customerName", a.CustomerName},
				{"email", a.Email},
				{"projectNeeds", a.ProjectNeeds},
			}
			for _, field := range required {
				if field.value == "" {
					return Result{
						Success: false,
						Error:   fmt.Sprintf("missing required field: %s", field.name),
					}.JSON(), nil
				}
			}

			err := repo.Upsert(ctx, model.Customer{
				Email:        a.Email,
				Name:         a.CustomerName,
				CompanyName:  a.CompanyName,
				ProjectNeeds: a.ProjectNeeds,
				Timeline:     a.Timeline,
				Budget:       a.Budget,
				ThreadID:     inv.ThreadID,
			})
			if err != nil {
				return "", fmt.Errorf("saving customer record: %w", err)
			}

			logger.Info("saved customer record",
				zap.String("email", a.Email),
				zap.String("thread_id", inv.ThreadID))

			return Result{
				Success: true,
				Message: "Okay, I have saved that customer information.",
			}.JSON(), nil
		},
	}
}
