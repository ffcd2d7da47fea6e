package koanf

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Provide loads the configuration of a service: struct defaults first, then an
// optional yaml config file, then environment overrides. Env keys are upper
// snake case prefixed with the service name, with "__" standing in for nesting,
// e.g. ONBOARD_POSTGRES__HOST.
func Provide[T any](service string, defaultValue T) T {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultValue, "koanf"), nil); err != nil {
		panic(fmt.Errorf("loading default config for %s: %w", service, err))
	}

	if path := os.Getenv(strings.ToUpper(service) + "_CONFIG_PATH"); path != "" {
		if err := k.Load(file.Provider(path), yamlParser{}); err != nil {
			panic(fmt.Errorf("loading config file %s: %w", path, err))
		}
	}

	prefix := strings.ToUpper(service) + "_"
	err := k.Load(env.Provider(prefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, prefix)), "__", ".")
	}), nil)
	if err != nil {
		panic(fmt.Errorf("loading env config for %s: %w", service, err))
	}

	var cfg T
	if err := k.Unmarshal("", &cfg); err != nil {
		panic(fmt.Errorf("unmarshalling config for %s: %w", service, err))
	}
	return cfg
}

type yamlParser struct{}

func (yamlParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (yamlParser) Marshal(m map[string]interface{}) ([]byte, error) {
	return yaml.Marshal(m)
}

type Postgres struct {
	Host     string `json:"host,omitempty" koanf:"host"`
	Port     string `json:"port,omitempty" koanf:"port"`
	Username string `json:"username,omitempty" koanf:"username"`
	Password string `json:"password,omitempty" koanf:"password"`
	DB       string `json:"db,omitempty" koanf:"db"`
	SSLMode  string `json:"ssl_mode,omitempty" koanf:"ssl_mode"`
}

type HttpServer struct {
	Address string `json:"address,omitempty" koanf:"address"`
}
