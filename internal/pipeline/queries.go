package pipeline

import (
	"fmt"
	"strings"

	"github.com/sells-group/leadgen/internal/model"
)

// BuildQueries turns an ICP into an ordered list of targeted search
// queries. The sequence is deterministic for a given ICP; a phrasing is
// skipped when every field it depends on is empty, so the result length
// varies between 0 and 8.
func BuildQueries(icp model.ICP) []string {
	title := icp.PrimaryJobTitle()
	industry := strings.TrimSpace(icp.Industry)
	region := icp.PrimaryRegion()
	size := strings.TrimSpace(icp.CompanySize)
	tech := ""
	if techs := icp.Technologies(); len(techs) > 0 {
		tech = techs[0]
	}

	type phrasing struct {
		query  string
		fields []string
	}

	phrasings := []phrasing{
		// Profile search: decision-makers by title in the target market.
		{fmt.Sprintf("%s %s %s LinkedIn profile", quoted(title), industry, region), []string{title, industry, region}},
		// Directory search: company listings for the industry and region.
		{fmt.Sprintf("%s companies in %s directory list", industry, region), []string{industry, region}},
		// Decision-maker + email-pattern search.
		{fmt.Sprintf("%s %s %s email contact", quoted(title), industry, region), []string{title, industry, region}},
		// Size/industry about-page search.
		{fmt.Sprintf("%s company %s employees about us %s", industry, quoted(size), region), []string{industry, size}},
		// Technology-stack search.
		{fmt.Sprintf("companies using %s %s %s", tech, industry, region), []string{tech}},
		// Professional-directory search.
		{fmt.Sprintf("%s %s site:linkedin.com/in %s", title, industry, region), []string{title, industry}},
		// Recent-hire / news search.
		{fmt.Sprintf("%s hires new %s announcement %s", quoted(industry), title, region), []string{industry, title}},
	}

	var queries []string
	for _, p := range phrasings {
		if allEmpty(p.fields) {
			continue
		}
		queries = append(queries, collapseSpaces(p.query))
	}
	return queries
}

// quoted wraps a non-empty value in search-engine phrase quotes.
func quoted(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return `"` + s + `"`
}

func allEmpty(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// collapseSpaces squeezes runs of whitespace left behind by empty fields.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
