// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/answerit"
	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/answer"
	"github.com/poiesic/answerit/ingestion"
	"github.com/poiesic/answerit/retrieval"
	"github.com/poiesic/answerit/workflow"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "answerit",
		Usage: "Corpus-first question answering with web fallback",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Load documents into the knowledge base",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Passage chunk size in characters",
						Value: 1000,
					},
					&cli.IntFlag{
						Name:  "chunk-overlap",
						Usage: "Overlap between consecutive chunks",
						Value: 200,
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Answer a question from the knowledge base or the web",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "generator-host",
						Usage: "Generation service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "generator-model",
						Usage: "Generation model name",
						Value: "qwen2.5:3b",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of passages to retrieve",
						Value: retrieval.DefaultTopK,
					},
					&cli.Float64Flag{
						Name:  "relevance-threshold",
						Usage: "Minimum top passage similarity to answer from the corpus",
						Value: retrieval.DefaultRelevanceThreshold,
					},
					&cli.Float64Flag{
						Name:  "min-confidence",
						Usage: "Minimum weighted retrieval confidence",
						Value: retrieval.DefaultMinConfidence,
					},
				),
			},
			{
				Name:   "info",
				Usage:  "Show knowledge base statistics",
				Action: infoCommand,
				Flags:  commonFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
	}
}

func aiConfig(c *cli.Context) *ai.Config {
	opts := []ai.ConfigOption{
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	}
	if host := c.String("generator-host"); host != "" {
		opts = append(opts, ai.WithGeneratorHost(host))
	}
	if model := c.String("generator-model"); model != "" {
		opts = append(opts, ai.WithGeneratorModel(model))
	}
	return ai.NewConfig(opts...)
}

func ingestCommand(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	sys, err := answerit.NewSystem(c.String("db"), answerit.WithAIConfig(aiConfig(c)))
	if err != nil {
		return fmt.Errorf("failed to open system: %w", err)
	}
	defer sys.Close()

	pipeline, err := sys.NewIngestionPipeline(
		ingestion.WithChunking(c.Int("chunk-size"), c.Int("chunk-overlap")))
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	for _, path := range c.Args().Slice() {
		count, err := pipeline.IngestFile(ctx, path)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "Ingested %s: %d passages\n", path, count)
	}

	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	sys, err := answerit.NewSystem(c.String("db"),
		answerit.WithAIConfig(aiConfig(c)),
		answerit.WithTopK(c.Int("top-k")),
		answerit.WithRelevanceGates(c.Float64("relevance-threshold"), c.Float64("min-confidence")))
	if err != nil {
		return fmt.Errorf("failed to open system: %w", err)
	}
	defer sys.Close()

	resp, err := sys.Ask(context.Background(), question)
	if err != nil {
		return fmt.Errorf("failed to answer question: %w", err)
	}

	if notice, ok := resp.Metadata[workflow.MetaFallbackNotification]; ok {
		fmt.Fprintln(os.Stderr, notice)
		fmt.Fprintln(os.Stderr)
	}

	fmt.Println(answer.FormatDisplay(resp.Answer, resp.Citations))
	fmt.Fprintf(os.Stderr, "\nSource: %s | Confidence: %.2f | Sources: %v\n",
		resp.SourceType, resp.Metadata[workflow.MetaConfidence], resp.Metadata[workflow.MetaSourceCount])

	return nil
}

func infoCommand(c *cli.Context) error {
	sys, err := answerit.NewSystem(c.String("db"), answerit.WithAIConfig(aiConfig(c)))
	if err != nil {
		return fmt.Errorf("failed to open system: %w", err)
	}
	defer sys.Close()

	count, err := sys.CountPassages(context.Background())
	if err != nil {
		return fmt.Errorf("failed to count passages: %w", err)
	}

	fmt.Printf("Database: %s\n", c.String("db"))
	fmt.Printf("Passages: %d\n", count)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
