package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"voxagent/internal/agent"
	"voxagent/internal/conf"
	"voxagent/internal/logger"
	"voxagent/internal/speech"
	"voxagent/internal/tui"
)

func main() {
	var (
		flagconf    string
		flagGateway string
	)
	flag.StringVar(&flagconf, "conf", "agent.yaml", "config path, eg: -conf agent.yaml")
	flag.StringVar(&flagGateway, "gateway", "", "gateway base URL, overrides the config file")
	flag.Parse()

	cfg, err := conf.LoadAgentConfig(flagconf)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if flagGateway != "" {
		cfg.GatewayURL = flagGateway
	}

	// File-only logging: the TUI owns stdout.
	if err := logger.Init(cfg.Log.Level, cfg.Log.File, false); err != nil {
		log.Fatalf("init logger: %v", err)
	}

	caps := speech.Detect()
	logger.Log.Infof("speech capabilities: recognizer=%t synthesizer=%t",
		caps.Recognizer != nil, caps.Synthesizer != nil)

	client := agent.NewClient(cfg.GatewayURL)
	a := agent.New(client, caps, agent.Options{
		Rate:     cfg.Voice.Rate,
		Pitch:    cfg.Voice.Pitch,
		Language: cfg.Voice.Language,
	})

	p := tea.NewProgram(tui.NewModel(a), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Log.Errorf("program exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
