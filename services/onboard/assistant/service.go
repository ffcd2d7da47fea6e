package assistant

import (
	"errors"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Fasscorp/Fassimo/services/onboard/config"
)

// Service wraps the hosted assistant provider. Assistants themselves are
// pre-configured on the provider side and referenced by id per topic; the
// service only drives threads, messages and runs against them.
type Service struct {
	logger    *zap.Logger
	client    *openai.Client
	modelName string
}

func New(logger *zap.Logger, cnf config.OpenAI) (*Service, error) {
	if cnf.Token == "" {
		return nil, errors.New("missing openai token")
	}

	var clientConfig openai.ClientConfig
	if cnf.IsAzure {
		clientConfig = openai.DefaultAzureConfig(cnf.Token, cnf.BaseURL)
		clientConfig.APIVersion = "2024-02-15-preview"
	} else {
		clientConfig = openai.DefaultConfig(cnf.Token)
		if cnf.BaseURL != "" {
			clientConfig.BaseURL = cnf.BaseURL
		}
		clientConfig.OrgID = cnf.OrgID
	}

	return &Service{
		logger:    logger.Named("assistant"),
		client:    openai.NewClientWithConfig(clientConfig),
		modelName: cnf.ModelName,
	}, nil
}

func (s *Service) Client() *openai.Client {
	return s.client
}
