package app

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/lobbylinks/lobbylinks/graph"
	"github.com/lobbylinks/lobbylinks/lda"
)

// Run executes the full pipeline: load the saved dataset (or fetch it
// when a query is given), clean it up, build the link graph and write
// the edge CSV.
func Run(ctx context.Context, cfg Config, logger *log.Logger, query lda.Query) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	svc, err := NewService(cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	var ds *lda.Dataset
	if len(query) > 0 {
		ds, err = svc.Fetch(ctx, query)
		if err != nil {
			return fmt.Errorf("app: fetch filings: %w", err)
		}
		if err := ds.Save(cfg.DatasetPath); err != nil {
			return err
		}
	} else {
		ds, err = lda.LoadDataset(cfg.DatasetPath)
		if err != nil {
			return fmt.Errorf("app: load dataset: %w", err)
		}
	}

	svc.Prepare(ds)
	edges, err := svc.BuildGraph(ctx, ds)
	if err != nil {
		return fmt.Errorf("app: build graph: %w", err)
	}
	if err := graph.SaveCSV(cfg.EdgesPath, edges); err != nil {
		return err
	}
	logger.Printf("app: wrote %d edges to %s", len(edges), cfg.EdgesPath)
	return nil
}
