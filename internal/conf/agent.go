package conf

import (
	"os"

	"gopkg.in/yaml.v3"
)

// AgentConfig configures the terminal agent client.
type AgentConfig struct {
	GatewayURL string      `yaml:"gateway_url"`
	Voice      VoiceConfig `yaml:"voice"`
	Log        LogConfig   `yaml:"log"`
}

// VoiceConfig tunes the narration utterances.
type VoiceConfig struct {
	Rate     float64 `yaml:"rate"`
	Pitch    float64 `yaml:"pitch"`
	Language string  `yaml:"language"`
}

// LogConfig configures the client's file logger. The TUI owns stdout, so
// logs only go to the file.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultAgentConfig returns the config used when no file is present.
func DefaultAgentConfig() *AgentConfig {
	return &AgentConfig{
		GatewayURL: "http://localhost:8080",
		Voice: VoiceConfig{
			Rate:     1.0,
			Pitch:    1.0,
			Language: "en-US",
		},
		Log: LogConfig{
			Level: "info",
			File:  "voxagent.log",
		},
	}
}

// LoadAgentConfig loads the agent config from path, falling back to defaults
// when the file does not exist.
func LoadAgentConfig(path string) (*AgentConfig, error) {
	cfg := DefaultAgentConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.GatewayURL == "" {
		cfg.GatewayURL = "http://localhost:8080"
	}
	return cfg, nil
}
