// Package pipeline implements the ICP lead search: query generation, web
// search, oracle extraction, lead structuring, and confidence scoring.
package pipeline

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/leadgen/internal/config"
	"github.com/sells-group/leadgen/internal/model"
	"github.com/sells-group/leadgen/pkg/anthropic"
	"github.com/sells-group/leadgen/pkg/brightdata"
)

// Result is the terminal output of one lead search.
type Result struct {
	ICPName      string       `json:"icp_name"`
	Timestamp    time.Time    `json:"timestamp"`
	TotalLeads   int          `json:"total_leads"`
	Leads        []model.Lead `json:"leads"`
	UsedFallback bool         `json:"used_fallback"`
}

// Pipeline orchestrates one lead search request. Dependencies are
// injected at construction time; the pipeline holds no cross-request
// mutable state beyond the pacing limiter.
type Pipeline struct {
	gateway   brightdata.Client
	extractor *Extractor
	cfg       config.PipelineConfig
	search    config.BrightDataConfig

	// limiter paces consecutive search calls to respect the provider's
	// rate limits. Queries are deliberately sequential.
	limiter *rate.Limiter
}

// New creates a Pipeline with explicit dependencies.
func New(gateway brightdata.Client, oracle anthropic.Client, cfg config.PipelineConfig, searchCfg config.BrightDataConfig, oracleCfg config.AnthropicConfig) *Pipeline {
	delay := time.Duration(cfg.QueryDelayMS) * time.Millisecond
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	return &Pipeline{
		gateway:   gateway,
		extractor: NewExtractor(oracle, oracleCfg, cfg.ContextCharBudget),
		cfg:       cfg,
		search:    searchCfg,
		limiter:   rate.NewLimiter(rate.Every(delay), 1),
	}
}

// Run processes one ICP request end to end. Gateway and oracle failures
// degrade to the fallback path; only ICP validation fails the request.
func (p *Pipeline) Run(ctx context.Context, icp model.ICP) (*Result, error) {
	if err := icp.Validate(); err != nil {
		return nil, err
	}

	queries := BuildQueries(icp)
	zap.L().Info("pipeline: starting lead search",
		zap.String("icp", icp.ICPName),
		zap.Int("queries", len(queries)),
	)

	results := p.runSearches(ctx, queries)

	var (
		records      []model.RawLead
		usedFallback bool
	)
	if len(results) > 0 {
		corpus := FormatSearchResults(results)
		if pages := p.scrapeTopResults(ctx, results); pages != "" {
			corpus += pages
		}
		extraction := p.extractor.Extract(ctx, icp, corpus)
		records = extraction.Records
	}

	if len(records) == 0 {
		zap.L().Warn("pipeline: no records extracted, using sample fallback",
			zap.String("icp", icp.ICPName),
			zap.Int("search_results", len(results)),
		)
		records = SampleLeads(icp)
		usedFallback = true
	}

	leads := make([]model.Lead, 0, len(records))
	for _, raw := range records {
		leads = append(leads, StructureLead(raw, icp))
	}

	// Descending by confidence; ties keep extraction order.
	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].Analysis.ConfidenceScore > leads[j].Analysis.ConfidenceScore
	})

	zap.L().Info("pipeline: lead search complete",
		zap.String("icp", icp.ICPName),
		zap.Int("leads", len(leads)),
		zap.Bool("fallback", usedFallback),
	)

	return &Result{
		ICPName:      icp.ICPName,
		Timestamp:    time.Now().UTC(),
		TotalLeads:   len(leads),
		Leads:        leads,
		UsedFallback: usedFallback,
	}, nil
}

// runSearches issues each query strictly in order with the pacing delay
// between calls. A failed search contributes nothing and the loop
// continues with the next query.
func (p *Pipeline) runSearches(ctx context.Context, queries []string) []brightdata.SearchResult {
	count := p.search.ResultCount
	if count <= 0 {
		count = 5
	}

	var all []brightdata.SearchResult
	for _, q := range queries {
		if err := p.limiter.Wait(ctx); err != nil {
			zap.L().Warn("pipeline: search pacing interrupted", zap.Error(err))
			break
		}

		results, err := p.gateway.Search(ctx, q, count)
		if err != nil {
			zap.L().Warn("pipeline: search failed, continuing",
				zap.String("query", q),
				zap.Error(err),
			)
			continue
		}
		all = append(all, results...)
	}
	return all
}

// scrapeTopResults opportunistically fetches the text of up to
// MaxScrapePages unique result URLs in parallel. Failures are skipped;
// the returned block may be empty.
func (p *Pipeline) scrapeTopResults(ctx context.Context, results []brightdata.SearchResult) string {
	limit := p.cfg.MaxScrapePages
	if limit <= 0 {
		return ""
	}

	seen := make(map[string]bool)
	var urls []string
	for _, r := range results {
		if r.URL == "" || seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		urls = append(urls, r.URL)
		if len(urls) >= limit {
			break
		}
	}
	if len(urls) == 0 {
		return ""
	}

	concurrency := p.cfg.ScrapeConcurrency
	if concurrency <= 0 {
		concurrency = 3
	}

	var mu sync.Mutex
	pages := make(map[string]string, len(urls))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, u := range urls {
		g.Go(func() error {
			content, err := p.gateway.Scrape(gCtx, u)
			if err != nil {
				zap.L().Debug("pipeline: scrape failed, skipping",
					zap.String("url", u),
					zap.Error(err),
				)
				return nil
			}
			mu.Lock()
			pages[u] = content
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if len(pages) == 0 {
		return ""
	}

	// Emit in request order for deterministic prompts.
	var b strings.Builder
	for _, u := range urls {
		content, ok := pages[u]
		if !ok || content == "" {
			continue
		}
		b.WriteString("\n--- Page: " + u + " ---\n")
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String()
}
