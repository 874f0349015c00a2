package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	gedcli "github.com/bosserz/ged-assessment/cli"
	"github.com/urfave/cli/v3"
)

type contextOpener func(ctx context.Context) (*gedcli.Context, error)

func newValidateQuestionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate-questions",
		Usage: "Check a question file (.json, .yaml or .xlsx) before serving it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Usage:    "The question file to validate.",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			file := c.String("file")
			fmt.Printf("Validating %q…\n", file)

			result, err := gedcli.ValidateQuestions(ctx, file)
			if err != nil {
				return err
			}

			fmt.Printf("✅ %d questions are valid.\n", result.Questions)
			fmt.Println("Tags:", strings.Join(result.Tags, ", "))
			return nil
		},
	}
}

func newListSubmissionsCommand(open contextOpener) *cli.Command {
	return &cli.Command{
		Name:  "list-submissions",
		Usage: "List every stored submission",
		Action: func(ctx context.Context, c *cli.Command) error {
			clictx, err := open(ctx)
			if err != nil {
				return err
			}

			summaries, err := clictx.ListSubmissions(ctx)
			if err != nil {
				return err
			}

			for _, summary := range summaries {
				fmt.Printf("%s\t%s <%s>\t%s\n", summary.Filename, summary.Name, summary.Email, summary.PDFLink)
			}
			fmt.Printf("%d submissions.\n", len(summaries))

			return nil
		},
	}
}

func newShowResultCommand(open contextOpener) *cli.Command {
	return &cli.Command{
		Name:  "show-result",
		Usage: "Print one stored submission as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "key",
				Usage:    "The submission filename, as printed by list-submissions.",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			clictx, err := open(ctx)
			if err != nil {
				return err
			}

			submission, err := clictx.ShowResult(ctx, c.String("key"))
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(submission)
		},
	}
}

func newExportXLSXCommand(open contextOpener) *cli.Command {
	return &cli.Command{
		Name:  "export-xlsx",
		Usage: "Export every stored submission to a spreadsheet",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Usage: "The spreadsheet to write.",
				Value: "submissions.xlsx",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			clictx, err := open(ctx)
			if err != nil {
				return err
			}

			out := c.String("out")
			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}

			count, err := clictx.ExportXLSX(ctx, file)
			if closeErr := file.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return err
			}

			fmt.Printf("✅ Exported %d submissions to %q.\n", count, out)
			return nil
		},
	}
}

func newRootCommand(subcommands ...*cli.Command) *cli.Command {
	return &cli.Command{
		Name:     "admin-cli",
		Usage:    "A CLI tool for managing the GED assessment backend.",
		Commands: subcommands,
	}
}
