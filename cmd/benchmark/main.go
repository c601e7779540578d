package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"math-agent/internal/di"
	"math-agent/internal/domain/entity"
	"math-agent/internal/infrastructure/env"
	"math-agent/internal/usecase/chat"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
)

var defaultQuestions = []string{
	"Solve the quadratic equation: x^2 + 5*x + 6 = 0",
	"Find the derivative of: 2*x^2 + 4*x - 6 ",
	"what is the square of the roots",
}

func main() {
	questionsFile := flag.StringP("questions", "f", "", "file with one question per line (defaults to the built-in set)")
	maxTurns := flag.Int("max-turns", 0, "decision cap per question (0 uses MAX_TURNS)")
	flag.Parse()

	settings := env.LoadSettings(env.NewEnvService())
	if *maxTurns > 0 {
		settings.MaxTurns = *maxTurns
	}

	questions := defaultQuestions
	if *questionsFile != "" {
		var err error
		questions, err = readQuestions(*questionsFile)
		if err != nil {
			log.Fatalf("Failed to read questions: %v", err)
		}
	}

	container, err := di.NewContainer(di.Config{
		Name:             "benchmark",
		OpenRouterAPIKey: settings.APIKey,
		OpenRouterModel:  settings.Model,
		OpenRouterURL:    settings.BaseURL,
		HTTPDebug:        settings.HTTPDebug,
		LogDir:           settings.LogDir,
		LogLevel:         settings.LogLevel,
	})
	if err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}
	defer container.Close()

	ctx := context.Background()
	smart := container.NewAgent(chat.Options{ContextTrimming: true, MaxTurns: settings.MaxTurns})
	regular := container.NewAgent(chat.Options{ContextTrimming: false, MaxTurns: settings.MaxTurns})

	header := color.New(color.Bold)
	header.Println("\n=== Starting Benchmark ===")

	for i, question := range questions {
		fmt.Printf("\nQuestion %d: %s\n", i+1, question)

		fmt.Println("\n--- Smart Agent (with context trimming) Response ---")
		printReply(smart.Chat(ctx, question))

		fmt.Println("\n--- Agent (without context trimming) Response ---")
		printReply(regular.Chat(ctx, question))
	}

	header.Println("\n=== Benchmark Results ===")
	printUsage("Smart Agent (with context trimming):", smart.Usage())
	printUsage("Agent (without context trimming):", regular.Usage())

	container.Logger.Info("Benchmark finished",
		"questions", len(questions),
		"smartTokens", smart.Usage().TotalTokens,
		"regularTokens", regular.Usage().TotalTokens)
}

func readQuestions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var questions []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if q := strings.TrimSpace(scanner.Text()); q != "" {
			questions = append(questions, q)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%s contains no questions", path)
	}
	return questions, nil
}

func printReply(reply string, err error) {
	if err != nil {
		color.Red("error: %v", err)
		return
	}
	fmt.Println(reply)
}

func printUsage(title string, usage entity.Usage) {
	fmt.Println()
	color.New(color.FgCyan).Println(title)
	fmt.Println(usage)
}
