package main

import (
	"context"
	"log"
	"os"

	gedcli "github.com/bosserz/ged-assessment/cli"
	"github.com/bosserz/ged-assessment/internal/deps"
	"github.com/bosserz/ged-assessment/internal/storage"

	_ "github.com/bosserz/ged-assessment/internal/deps/logger"
)

func main() {
	// storage is opened only by the commands that read submissions
	var closeStore func() error
	openContext := func(ctx context.Context) (*gedcli.Context, error) {
		cfg, err := deps.ServerConfig()
		if err != nil {
			return nil, err
		}

		store, err := deps.OpenStore(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
		closeStore = store.Close

		return gedcli.NewContext(storage.NewSubmissionRepository(store)), nil
	}

	rootCommand := newRootCommand(
		newValidateQuestionsCommand(),
		newListSubmissionsCommand(openContext),
		newShowResultCommand(openContext),
		newExportXLSXCommand(openContext),
	)

	err := rootCommand.Run(context.Background(), os.Args)

	if closeStore != nil {
		if err := closeStore(); err != nil {
			log.Printf("close storage: %v", err)
		}
	}

	if err != nil {
		log.Fatal(err)
	}
}
