package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Fasscorp/Fassimo/services/onboard/config"
)

func TestNewRequiresToken(t *testing.T) {
	_, err := New(zap.NewNop(), config.OpenAI{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing openai token")
}

func TestNew(t *testing.T) {
	svc, err := New(zap.NewNop(), config.OpenAI{
		Token:     "sk-test",
		ModelName: "gpt-3.5-turbo",
	})
	require.NoError(t, err)
	assert.NotNil(t, svc.Client())
}

func TestNewAzure(t *testing.T) {
	svc, err := New(zap.NewNop(), config.OpenAI{
		Token:   "azure-key",
		BaseURL: "https://example.openai.azure.com",
		IsAzure: true,
	})
	require.NoError(t, err)
	assert.NotNil(t, svc.Client())
}
