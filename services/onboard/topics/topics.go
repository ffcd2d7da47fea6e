package topics

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Topic binds a chat topic to a provider-side assistant and the tool names the
// run may call. The assistant id itself stays in the environment so topic
// files can be committed without credentials.
type Topic struct {
	Name         string   `yaml:"name"`
	AssistantEnv string   `yaml:"assistant_env"`
	Tools        []string `yaml:"tools"`
}

// AssistantID resolves the assistant id from the environment. Empty means the
// deployment is missing configuration for this topic.
func (t Topic) AssistantID() string {
	return os.Getenv(t.AssistantEnv)
}

// Table is the immutable topic registry, loaded once at startup.
type Table struct {
	topics map[string]Topic
}

func (t *Table) Get(name string) (Topic, bool) {
	topic, ok := t.topics[name]
	return topic, ok
}

func (t *Table) Names() []string {
	names := make([]string, 0, len(t.topics))
	for name := range t.topics {
		names = append(names, name)
	}
	return names
}

func New(topics []Topic) *Table {
	m := make(map[string]Topic, len(topics))
	for _, topic := range topics {
		m[topic.Name] = topic
	}
	return &Table{topics: m}
}

// Load reads the topic table from a yaml file. An empty path falls back to the
// built-in defaults.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topics file: %w", err)
	}

	var topics []Topic
	if err := yaml.Unmarshal(content, &topics); err != nil {
		return nil, fmt.Errorf("parsing topics file %s: %w", path, err)
	}

	return New(topics), nil
}

func Default() *Table {
	return New([]Topic{
		{
			Name:         "Customer Information",
			AssistantEnv: "CUSTOMER_INTERVIEW_ASSISTANT_ID",
			Tools:        []string{"saveCustomerData", "saveBrandingData"},
		},
		{
			Name:         "Product Ideas",
			AssistantEnv: "PRODUCT_IDEAS_ASSISTANT_ID",
		},
		{
			Name:         "General Settings",
			AssistantEnv: "GENERAL_SETTINGS_ASSISTANT_ID",
		},
	})
}
