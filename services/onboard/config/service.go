package config

import "github.com/Fasscorp/Fassimo/pkg/koanf"

type OpenAI struct {
	Token     string `json:"token,omitempty" koanf:"token"`
	BaseURL   string `json:"base_url,omitempty" koanf:"base_url"`
	OrgID     string `json:"org_id,omitempty" koanf:"org_id"`
	ModelName string `json:"model_name,omitempty" koanf:"model_name"`
	IsAzure   bool   `json:"is_azure,omitempty" koanf:"is_azure"`
}

type Orchestrator struct {
	PollIntervalMillis int `json:"poll_interval_millis,omitempty" koanf:"poll_interval_millis"`
	MaxAttempts        int `json:"max_attempts,omitempty" koanf:"max_attempts"`
}

type OnboardConfig struct {
	Postgres     koanf.Postgres   `json:"postgres,omitempty" koanf:"postgres"`
	OpenAI       OpenAI           `json:"openai,omitempty" koanf:"openai"`
	Http         koanf.HttpServer `json:"http,omitempty" koanf:"http"`
	Orchestrator Orchestrator     `json:"orchestrator,omitempty" koanf:"orchestrator"`

	// TopicsPath points at the yaml file mapping chat topics to assistants and
	// tool sets. Empty means the built-in defaults.
	TopicsPath string `json:"topics_path,omitempty" koanf:"topics_path"`
}
