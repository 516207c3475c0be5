package matcher

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/pharmakart/platform/pkg/brand"
	"github.com/pharmakart/platform/pkg/common/config"
	"github.com/pharmakart/platform/pkg/common/kafka"
	"github.com/pharmakart/platform/pkg/common/logger"
	"github.com/pharmakart/platform/pkg/common/models"
	"github.com/pharmakart/platform/pkg/observability/metrics"
)

var ErrEmptyMention = errors.New("mention brand text is empty")

type Options struct {
	ResultCap     int
	MinConfidence float64
	FallbackFloor float64
	ScanLimit     int
	Workers       int
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ResultCap:     cfg.MatcherResultCap,
		MinConfidence: cfg.MatcherMinConfidence,
		FallbackFloor: cfg.MatcherFallbackFloor,
		ScanLimit:     cfg.MatcherScanLimit,
		Workers:       cfg.MatcherWorkers,
	}
}

// Service orchestrates the match pipeline for mentions: resolve the brand,
// locate candidates, score them, widen with a full-catalog scan when the
// staged strategies come up short, then dedupe, rank and truncate.
type Service struct {
	resolver *brand.Resolver
	locator  *Locator
	scorer   *Scorer
	catalog  CatalogReader
	cache    *Cache
	producer *kafka.Producer
	dlq      *kafka.Producer
	opts     Options
}

func NewService(resolver *brand.Resolver, locator *Locator, scorer *Scorer, reader CatalogReader, cache *Cache, producer, dlq *kafka.Producer, opts Options) *Service {
	if opts.ResultCap <= 0 {
		opts.ResultCap = 5
	}
	if opts.MinConfidence <= 0 {
		opts.MinConfidence = 0.3
	}
	if opts.FallbackFloor <= 0 {
		opts.FallbackFloor = 0.6
	}
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	return &Service{
		resolver: resolver,
		locator:  locator,
		scorer:   scorer,
		catalog:  reader,
		cache:    cache,
		producer: producer,
		dlq:      dlq,
		opts:     opts,
	}
}

// Match resolves one mention to its ranked candidate list. An empty list is
// a normal business outcome; only a missing brand text or a catalog failure
// is an error.
func (s *Service) Match(ctx context.Context, mention models.MedicineMention) ([]models.MatchCandidate, error) {
	if strings.TrimSpace(mention.BrandText) == "" {
		return nil, ErrEmptyMention
	}

	if cached, ok := s.cache.Get(ctx, mention); ok {
		metrics.ObserveCacheHit()
		return cached, nil
	}
	metrics.ObserveCacheMiss()

	candidates, err := s.assemble(ctx, mention)
	if err != nil {
		return nil, err
	}

	presented := present(candidates)
	s.cache.Set(ctx, mention, presented)

	if len(presented) == 0 {
		metrics.ObserveEmptyResult()
	}
	metrics.ObserveMentionMatched()

	return presented, nil
}

// MatchAll scores every mention of a request, fanning mentions out across a
// bounded worker pool. Mentions are independent; a catalog failure aborts the
// request, while an internal failure on one mention degrades only that
// mention to an empty list.
func (s *Service) MatchAll(ctx context.Context, req models.MatchRequest) (*models.MatchResponse, error) {
	results := make([]models.MentionMatches, len(req.Mentions))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	sem := make(chan struct{}, s.opts.Workers)

	for i := range req.Mentions {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, mention models.MedicineMention) {
			defer wg.Done()
			defer func() { <-sem }()

			candidates, err := s.Match(ctx, mention)
			if err != nil {
				if errors.Is(err, ErrEmptyMention) {
					logger.Log.WithField("raw_text", mention.RawText).Warn("skipping mention without brand text")
				} else {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
			results[idx] = models.MentionMatches{
				Mention:    mention,
				Candidates: candidates,
			}
		}(i, req.Mentions[i])
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	resp := &models.MatchResponse{
		PrescriptionID: req.PrescriptionID,
		Results:        results,
	}

	s.publish(ctx, resp)
	return resp, nil
}

// assemble runs the engine for one mention. A panic inside normalization or
// scoring degrades this mention to an empty candidate list instead of
// aborting the whole prescription.
func (s *Service) assemble(ctx context.Context, mention models.MedicineMention) (candidates []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.WithFields(map[string]interface{}{
				"brand_text": mention.BrandText,
				"panic":      r,
			}).Error("match pipeline panic, degrading mention to empty result")
			candidates, err = nil, nil
		}
	}()

	hyp := s.resolver.Resolve(mention.BrandText)

	products, matchType, err := s.locator.Locate(ctx, mention, hyp)
	if err != nil {
		return nil, err
	}

	candidates = make([]Candidate, 0, len(products))
	for _, product := range products {
		candidates = append(candidates, Candidate{
			Product:    product,
			Type:       matchType,
			Confidence: s.scorer.Score(mention, hyp, product),
		})
	}

	if len(candidates) < s.opts.ResultCap {
		widened, werr := s.widen(ctx, mention, hyp)
		if werr != nil {
			return nil, werr
		}
		candidates = append(candidates, widened...)
	}

	return s.finalize(candidates), nil
}

// widen scans the active catalog and scores every product, accepting those
// above the fallback floor. This catches misspelled or unlisted brands the
// staged strategies legitimately miss.
func (s *Service) widen(ctx context.Context, mention models.MedicineMention, hyp brand.Hypothesis) ([]Candidate, error) {
	products, err := s.catalog.ListActive(ctx, s.opts.ScanLimit)
	if err != nil {
		return nil, err
	}
	metrics.ObserveFallbackScan()

	matchType := MatchPartial
	if hyp.AliasHit() {
		matchType = MatchPattern
	}

	var widened []Candidate
	for _, product := range products {
		score := s.scorer.Score(mention, hyp, product)
		if score < s.opts.FallbackFloor {
			continue
		}
		widened = append(widened, Candidate{
			Product:    product,
			Type:       matchType,
			Confidence: score,
		})
	}
	return widened, nil
}

// finalize dedupes by product identity (first occurrence wins), sorts by
// descending confidence with stable ties, drops everything below the minimum
// confidence, and truncates to the result cap.
func (s *Service) finalize(candidates []Candidate) []Candidate {
	seen := make(map[string]bool, len(candidates))
	deduped := candidates[:0]
	for _, c := range candidates {
		if seen[c.Product.ID] {
			continue
		}
		seen[c.Product.ID] = true
		deduped = append(deduped, c)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Confidence > deduped[j].Confidence
	})

	final := deduped[:0]
	for _, c := range deduped {
		if c.Confidence < s.opts.MinConfidence {
			continue
		}
		final = append(final, c)
	}

	if len(final) > s.opts.ResultCap {
		final = final[:s.opts.ResultCap]
	}
	return final
}

func (s *Service) publish(ctx context.Context, resp *models.MatchResponse) {
	if s.producer == nil {
		return
	}
	payload := map[string]interface{}{
		"match_response": resp,
	}
	if err := s.producer.PublishEvent(ctx, "match", "matcher-service", payload); err != nil {
		logger.Log.WithError(err).Error("failed to publish match event")
		if s.dlq != nil {
			_ = s.dlq.PublishEvent(ctx, "match", "matcher-service", payload)
		}
		return
	}
	metrics.ObserveEventPublished()
}

// present converts engine candidates to their boundary shape, rounding the
// confidence to two decimals for presentation only.
func present(candidates []Candidate) []models.MatchCandidate {
	out := make([]models.MatchCandidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, models.MatchCandidate{
			ProductID:            c.Product.ID,
			Name:                 c.Product.Name,
			GenericName:          c.Product.GenericName,
			Manufacturer:         c.Product.Manufacturer,
			Strength:             c.Product.Strength,
			Form:                 c.Product.Form,
			UnitPrice:            c.Product.UnitPrice,
			StockQuantity:        c.Product.StockQuantity,
			PrescriptionRequired: c.Product.PrescriptionRequired,
			MatchType:            string(c.Type),
			Confidence:           math.Round(c.Confidence*100) / 100,
		})
	}
	return out
}
