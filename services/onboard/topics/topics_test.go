package topics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	content := `
- name: Customer Information
  assistant_env: CUSTOMER_INTERVIEW_ASSISTANT_ID
  tools:
    - saveCustomerData
    - saveBrandingData
- name: Product Ideas
  assistant_env: PRODUCT_IDEAS_ASSISTANT_ID
`
	path := filepath.Join(t.TempDir(), "topics.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := Load(path)
	require.NoError(t, err)

	topic, ok := table.Get("Customer Information")
	require.True(t, ok)
	assert.Equal(t, "CUSTOMER_INTERVIEW_ASSISTANT_ID", topic.AssistantEnv)
	assert.Equal(t, []string{"saveCustomerData", "saveBrandingData"}, topic.Tools)

	topic, ok = table.Get("Product Ideas")
	require.True(t, ok)
	assert.Empty(t, topic.Tools)

	_, ok = table.Get("Unknown Topic")
	assert.False(t, ok)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)

	topic, ok := table.Get("Customer Information")
	require.True(t, ok)
	assert.Equal(t, []string{"saveCustomerData", "saveBrandingData"}, topic.Tools)

	for _, name := range []string{"Product Ideas", "General Settings"} {
		_, ok := table.Get(name)
		assert.True(t, ok, name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestAssistantIDResolvesFromEnv(t *testing.T) {
	t.Setenv("CUSTOMER_INTERVIEW_ASSISTANT_ID", "asst_test_123")

	topic, ok := Default().Get("Customer Information")
	require.True(t, ok)
	assert.Equal(t, "asst_test_123", topic.AssistantID())
}

func TestNames(t *testing.T) {
	names := Default().Names()
	assert.ElementsMatch(t, []string{"Customer Information", "Product Ideas", "General Settings"}, names)
}
