package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestIngestCommand_RequiresDB(t *testing.T) {
	app := &cli.App{
		Name: "answerit",
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Action: ingestCommand,
				Flags:  commonFlags(),
			},
		},
	}

	err := app.Run([]string{"answerit", "ingest", "doc.pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}

func TestIngestCommand_RequiresFiles(t *testing.T) {
	app := &cli.App{
		Name: "answerit",
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Action: func(c *cli.Context) error {
					if c.Args().Len() == 0 {
						return assert.AnError
					}
					return nil
				},
			},
		},
	}

	err := app.Run([]string{"answerit", "ingest"})
	assert.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"DEBUG", false},
		{"verbose", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			app := &cli.App{
				Name: "answerit",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "log-level", Value: tt.level},
				},
				Before: setupLogger,
				Action: func(c *cli.Context) error { return nil },
			}

			err := app.Run([]string{"answerit"})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAIConfigFromFlags(t *testing.T) {
	var captured string
	app := &cli.App{
		Name: "answerit",
		Commands: []*cli.Command{
			{
				Name: "probe",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "embedding-host", Value: "http://localhost:11434/v1"},
					&cli.StringFlag{Name: "embedding-model", Value: "embeddinggemma"},
					&cli.StringFlag{Name: "generator-host"},
					&cli.StringFlag{Name: "generator-model"},
				},
				Action: func(c *cli.Context) error {
					cfg := aiConfig(c)
					captured = cfg.EmbeddingModel
					assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
					// Generator settings keep their defaults when unset
					assert.Equal(t, "qwen2.5:3b", cfg.GeneratorModel)
					return nil
				},
			},
		},
	}

	err := app.Run([]string{"answerit", "probe", "--embedding-model", "nomic-embed-text"})
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", captured)
}
