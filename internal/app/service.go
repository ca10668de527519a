package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/lobbylinks/lobbylinks/extract"
	"github.com/lobbylinks/lobbylinks/graph"
	"github.com/lobbylinks/lobbylinks/lda"
	"github.com/lobbylinks/lobbylinks/nameml"
	"github.com/lobbylinks/lobbylinks/orgnames"
	"github.com/lobbylinks/lobbylinks/roster"
)

// Service holds the wired pipeline. Construction loads the roster and,
// unless disabled, the name-embedding model; everything downstream is
// lazy.
type Service struct {
	cfg    Config
	logger *log.Logger

	roster    *roster.Roster
	extractor *extract.Extractor
	reducer   *orgnames.Reducer
	issues    *lda.IssueCodes
	client    *lda.Client
	embedder  *nameml.OrtEmbedder
}

func NewService(cfg Config, logger *log.Logger) (*Service, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	r, err := roster.Load(cfg.RosterConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("app: load roster: %w", err)
	}

	s := &Service{
		cfg:       cfg,
		logger:    logger,
		roster:    r,
		extractor: extract.NewExtractor(extract.NewProseNER(), logger),
		reducer:   orgnames.NewReducer(extract.NewProsePOS(), logger),
		issues:    lda.NewIssueCodes(),
		client:    lda.NewClient(cfg.ClientConfig(), logger),
	}

	if !cfg.Model.Disabled && cfg.Model.ModelPath != "" {
		emb, err := nameml.NewOrtEmbedder(cfg.EncoderConfig())
		if err != nil {
			// The cascade works without the learned stage; keep
			// going on string metrics alone.
			logger.Printf("app: name model unavailable, matching without it: %v", err)
		} else {
			s.embedder = emb
			matcher := nameml.NewMatcher(emb, logger)
			if cfg.Model.CacheDir != "" {
				if err := matcher.EnableDiskCache(cfg.Model.CacheDir, filepath.Base(cfg.Model.ModelPath)); err != nil {
					logger.Printf("app: vector cache disabled: %v", err)
				}
			}
			r.SetScorer(matcher)
		}
	}
	return s, nil
}

func (s *Service) Close() error {
	if s.embedder != nil {
		return s.embedder.Close()
	}
	return nil
}

func (s *Service) Roster() *roster.Roster     { return s.roster }
func (s *Service) Reducer() *orgnames.Reducer { return s.reducer }
func (s *Service) Issues() *lda.IssueCodes    { return s.issues }

// Fetch queries the disclosure API and returns the deduplicated
// dataset.
func (s *Service) Fetch(ctx context.Context, q lda.Query) (*lda.Dataset, error) {
	return s.client.Fetch(ctx, q)
}

// Prepare runs the standard cleanup pass: drop superseded filings and
// canonicalize client names when merging is enabled.
func (s *Service) Prepare(ds *lda.Dataset) {
	ds.MergeAmended()
	if s.cfg.Graph.MergeNames {
		ds.MergeNames(s.reducer, s.logger)
	}
}

// BuildGraph resolves the dataset into the edge list, extrapolating
// lobbyist-implied links when configured.
func (s *Service) BuildGraph(ctx context.Context, ds *lda.Dataset) ([]graph.Edge, error) {
	b := graph.NewBuilder(s.cfg.GraphConfig(), s.roster, s.extractor, s.issues, s.logger)
	edges, err := b.Build(ctx, ds)
	if err != nil {
		return nil, err
	}
	if s.cfg.Graph.Extrapolate {
		edges = graph.Extrapolate(edges)
	}
	return edges, nil
}

// Match resolves one free-text name against the roster.
func (s *Service) Match(ctx context.Context, name string, opts roster.MatchOptions) (roster.Result, error) {
	return s.roster.BestMatch(ctx, name, opts)
}
