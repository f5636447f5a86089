package baseline

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
)

// FeatureSearcher looks up feature records for search terms.
type FeatureSearcher interface {
	SearchFeatures(ctx context.Context, terms []string, limit int) ([]Feature, error)
}

// Service implements the two Baseline operations independent of transport.
type Service struct {
	searcher FeatureSearcher
	logger   logSDK.Logger
}

// NewService constructs a Service backed by searcher.
func NewService(searcher FeatureSearcher, logger logSDK.Logger) (*Service, error) {
	if searcher == nil {
		return nil, errors.New("feature searcher is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &Service{
		searcher: searcher,
		logger:   logger,
	}, nil
}

// BaselineStatus searches for q.Terms and renders the matches as markdown.
// Invalid queries fail with *ValidationError before any network call;
// upstream failures are returned unchanged.
func (s *Service) BaselineStatus(ctx context.Context, q Query) (string, error) {
	if err := q.Validate(); err != nil {
		return "", err
	}

	startAt := time.Now()
	features, err := s.searcher.SearchFeatures(ctx, q.Terms, q.Limit)
	if err != nil {
		s.logger.Warn("search features",
			zap.Error(err),
			zap.Strings("terms", q.Terms),
		)
		return "", err
	}

	s.logger.Debug("search features",
		zap.Strings("terms", q.Terms),
		zap.Int("limit", ClampLimit(q.Limit)),
		zap.Int("results_count", len(features)),
		zap.Duration("cost", time.Since(startAt)),
	)

	return Format(q, features), nil
}

// BaselineSummary returns the static overview of the status categories.
func (s *Service) BaselineSummary() string {
	return Summary
}
