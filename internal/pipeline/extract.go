package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen/internal/config"
	"github.com/sells-group/leadgen/internal/model"
	"github.com/sells-group/leadgen/pkg/anthropic"
	"github.com/sells-group/leadgen/pkg/brightdata"
)

// Outcome tags the result of one oracle extraction. Malformed and Empty
// both contribute zero records; they are distinguished only for logging.
type Outcome int

const (
	// OutcomeDecoded means at least one record was decoded.
	OutcomeDecoded Outcome = iota
	// OutcomeEmpty means the oracle produced a valid but empty answer,
	// or the call itself failed.
	OutcomeEmpty
	// OutcomeMalformed means the reply carried no parseable JSON array.
	OutcomeMalformed
)

// Extraction is the tagged result of the oracle adapter. It never carries
// an error: a failed or unparseable oracle call degrades to zero records.
type Extraction struct {
	Outcome Outcome
	Records []model.RawLead
}

const extractionSystemPrompt = `You are an expert B2B lead generation analyst. You extract structured lead records from raw web search results.

Rules:
1. Never fabricate data. Extract only facts that trace back to the provided search results.
2. Each record must name a real person or a clearly identified decision-maker role at a real company.
3. Use the literal string "Not found" for any field the results do not support.
4. Include the source URL each record was extracted from.
5. Return ONLY a JSON array, no text before or after it.`

const extractionUserPrompt = `Extract up to 15 B2B leads matching this Ideal Customer Profile:

Industry: %s
Company Size: %s
Target Job Titles: %s
Geographic Region: %s
Technologies: %s

Search results:
%s

Return a JSON array of objects with exactly these keys:
[
  {
    "lead_name": "...",
    "designation": "...",
    "company_name": "...",
    "source": "<source URL>",
    "email": "... or Not found",
    "phone": "... or Not found",
    "linkedin": "... or Not found",
    "social_profiles": {"twitter": "...", "github": "..."},
    "company_about": "...",
    "company_industry": "...",
    "company_size": "...",
    "company_location": "...",
    "company_website": "...",
    "company_email": "... or Not found",
    "company_phone": "... or Not found",
    "company_address": "... or Not found",
    "company_valuation": "... or Not found",
    "company_tech": "... or Not found",
    "company_revenue": "... or Not found",
    "company_founded": "... or Not found",
    "company_news": "... or Not found"
  }
]

Output ONLY the JSON array.`

// Extractor asks the oracle to pull structured lead records out of
// accumulated search result text.
type Extractor struct {
	oracle anthropic.Client
	cfg    config.AnthropicConfig
	budget int
}

// NewExtractor creates an Extractor with the given oracle and settings.
func NewExtractor(oracle anthropic.Client, cfg config.AnthropicConfig, charBudget int) *Extractor {
	if charBudget <= 0 {
		charBudget = 30000
	}
	return &Extractor{oracle: oracle, cfg: cfg, budget: charBudget}
}

// Extract sends the ICP plus the accumulated results to the oracle and
// decodes the embedded JSON array from its free-text reply. Oracle
// failures and undecodable replies degrade to zero records; this method
// never returns an error.
func (e *Extractor) Extract(ctx context.Context, icp model.ICP, results string) Extraction {
	if strings.TrimSpace(results) == "" {
		return Extraction{Outcome: OutcomeEmpty}
	}

	if len(results) > e.budget {
		results = results[:e.budget]
	}

	prompt := fmt.Sprintf(extractionUserPrompt,
		icp.Industry,
		icp.CompanySize,
		icp.TargetJobTitle,
		icp.GeographicRegion,
		icp.TechnologyUsed,
		results,
	)

	temp := e.cfg.Temperature
	resp, err := e.oracle.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.cfg.Model,
		MaxTokens:   e.cfg.MaxTokens,
		System:      extractionSystemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		zap.L().Warn("extract: oracle call failed", zap.Error(err))
		return Extraction{Outcome: OutcomeEmpty}
	}
	resp.Usage.LogCost(e.cfg.Model, "extract")

	return DecodeRecords(resp.Text())
}

// DecodeRecords locates and decodes the structured records embedded in
// free oracle text. The oracle may wrap the array in prose or code fences
// despite instructions; a lone top-level object is accepted and wrapped
// into a one-element result.
func DecodeRecords(text string) Extraction {
	records, found := decodeFirstArray(text)
	if !found {
		// A lone top-level object counts as a one-element result.
		if obj := findBalanced(text, 0, '{', '}'); obj != "" {
			var single model.RawLead
			if err := json.Unmarshal([]byte(obj), &single); err == nil && single != nil {
				records, found = []model.RawLead{single}, true
			}
		}
	}
	if !found {
		zap.L().Warn("extract: no JSON array found in oracle reply",
			zap.Int("reply_len", len(text)),
		)
		return Extraction{Outcome: OutcomeMalformed}
	}

	// Drop entries the decoder left nil (e.g. literal nulls in the array).
	valid := records[:0]
	for _, r := range records {
		if r != nil {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return Extraction{Outcome: OutcomeEmpty}
	}

	return Extraction{Outcome: OutcomeDecoded, Records: valid}
}

// decodeFirstArray scans the text for balanced [...] literals and returns
// the first one that decodes as a record array. Prose may contain stray
// brackets (markdown links), so candidates that fail to decode are skipped.
func decodeFirstArray(text string) ([]model.RawLead, bool) {
	from := 0
	for {
		start := strings.IndexByte(text[from:], '[')
		if start < 0 {
			return nil, false
		}
		from += start
		candidate := findBalanced(text, from, '[', ']')
		if candidate != "" {
			var records []model.RawLead
			if err := json.Unmarshal([]byte(candidate), &records); err == nil {
				return records, true
			}
		}
		from++
	}
}

// findBalanced returns the first balanced literal delimited by open/closing
// at or after offset, scanning bracket depth while honoring string
// literals and escapes. Returns "" when none exists.
func findBalanced(text string, offset int, open, closing byte) string {
	if offset >= len(text) {
		return ""
	}
	start := strings.IndexByte(text[offset:], open)
	if start < 0 {
		return ""
	}
	start += offset

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// FormatSearchResults renders gateway snippets into the text block handed
// to the oracle.
func FormatSearchResults(results []brightdata.SearchResult) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "--- Result %d ---\n", i+1)
		if r.Title != "" {
			b.WriteString("Title: " + r.Title + "\n")
		}
		if r.URL != "" {
			b.WriteString("URL: " + r.URL + "\n")
		}
		if r.Description != "" {
			b.WriteString(r.Description + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
