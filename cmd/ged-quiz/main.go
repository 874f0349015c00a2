package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/bosserz/ged-assessment/internal/config"
	"github.com/bosserz/ged-assessment/internal/controller"
	"github.com/bosserz/ged-assessment/internal/deps"
	"github.com/bosserz/ged-assessment/internal/deps/logger"
	"github.com/bosserz/ged-assessment/internal/quizclient"
	"github.com/bosserz/ged-assessment/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCommand().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "ged-quiz",
		Usage: "Take the timed GED English pre-test in your terminal.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "server-url",
				Usage: "The assessment backend. Overrides SERVER_URL.",
			},
			&cli.DurationFlag{
				Name:  "duration",
				Usage: "The time allowed for the test. Overrides TEST_DURATION.",
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Usage: "Where the PDF report is saved. Overrides OUTPUT_DIR.",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := deps.ClientConfig()
			if err != nil {
				return err
			}

			applyFlags(&cfg, c)
			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(ctx, cfg)
		},
	}
}

func applyFlags(cfg *config.ClientConfig, c *cli.Command) {
	if c.IsSet("server-url") {
		cfg.ServerURL = c.String("server-url")
	}
	if c.IsSet("duration") {
		cfg.TestDuration = c.Duration("duration")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
}

func run(ctx context.Context, cfg config.ClientConfig) error {
	// the terminal belongs to the UI, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() {
		_ = logFile.Close()
	}()
	logger.SetOutput(logFile)

	slog.Info("starting quiz", "server_url", cfg.ServerURL, "duration", cfg.TestDuration)

	client := quizclient.New(cfg.ServerURL, cfg.HTTPTimeout)
	ctrl := controller.New(client, cfg.TestDuration, cfg.OutputDir)

	program := tea.NewProgram(tui.New(ctx, ctrl, cfg.TestDuration), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run quiz: %w", err)
	}

	return nil
}
