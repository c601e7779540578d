package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"math-agent/internal/di"
	"math-agent/internal/infrastructure/env"
	"math-agent/internal/usecase/chat"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings := env.LoadSettings(env.NewEnvService())

	container, err := di.NewContainer(di.Config{
		Name:             "chat",
		OpenRouterAPIKey: settings.APIKey,
		OpenRouterModel:  settings.Model,
		OpenRouterURL:    settings.BaseURL,
		HTTPDebug:        settings.HTTPDebug,
		LogDir:           settings.LogDir,
		LogLevel:         settings.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ui := container.Interaction
	agent := container.NewAgent(chat.Options{
		ContextTrimming: settings.ContextTrimming,
		MaxTurns:        settings.MaxTurns,
	})
	container.Logger.Info("Session started", "agent_id", agent.ID(), "model", settings.Model, "contextTrimming", settings.ContextTrimming)

	ui.ShowBanner(ctx)
	for {
		input, err := ui.ReadLine(ctx, "\nYou: ")
		if err != nil {
			if ctx.Err() != nil {
				fmt.Println("\nSession terminated by user. Goodbye!")
				return nil
			}
			if errors.Is(err, io.EOF) {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return err
		}

		switch strings.ToLower(input) {
		case "exit", "quit", "q":
			fmt.Println("Goodbye!")
			return nil
		case "help":
			ui.ShowHelp(ctx)
			continue
		case "":
			continue
		}

		reply, err := agent.Chat(ctx, input)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Println("\nSession terminated by user. Goodbye!")
				return nil
			}
			container.Logger.Error("Chat failed", "error", err)
			ui.ShowError(ctx, err)
			continue
		}

		ui.ShowReply(ctx, reply)
	}
}
