package pipeline

import (
	"fmt"
	"strings"

	"github.com/sells-group/leadgen/internal/model"
)

// Criterion weights. They sum to 100 and the thresholds below are a
// contract shared with insights, recommendations, and the final sort
// order; changing any of them changes user-visible output.
const (
	weightIndustry = 30
	weightJobTitle = 25
	weightLocation = 15
	weightEmail    = 10
	weightLinkedIn = 10
	weightSize     = 10
)

// Matched-criterion labels.
const (
	MatchIndustry = "Industry match"
	MatchJobTitle = "Job title match"
	MatchLocation = "Geographic match"
	MatchSize     = "Company size match"
	MatchEmail    = "Contact email available"
	MatchLinkedIn = "LinkedIn profile available"
)

// Confidence is the ICP-fit verdict for one raw record.
type Confidence struct {
	Percentage float64
	Grade      string
	Matches    []string
}

// Score computes a weighted 0-100 match of a raw record against the ICP.
// Matching is case-insensitive substring comparison; the function is pure
// and total over adversarial input.
func Score(raw model.RawLead, icp model.ICP) Confidence {
	score := 0.0
	var matches []string

	// Industry: ICP industry appears in the lead's industry text.
	if industry := strings.ToLower(strings.TrimSpace(icp.Industry)); industry != "" {
		if strings.Contains(strings.ToLower(raw.Str(model.KeyCompanyIndustry)), industry) {
			score += weightIndustry
			matches = append(matches, MatchIndustry)
		}
	}

	// Job title: any ICP title token matches the designation either direction.
	designation := strings.ToLower(raw.Str(model.KeyDesignation))
	if designation != "" {
		for _, title := range icp.JobTitles() {
			t := strings.ToLower(title)
			if strings.Contains(designation, t) || strings.Contains(t, designation) {
				score += weightJobTitle
				matches = append(matches, MatchJobTitle)
				break
			}
		}
	}

	// Location: any ICP region token appears in the lead's location.
	if location := strings.ToLower(raw.Str(model.KeyCompanyLocation)); location != "" {
		for _, region := range icp.Regions() {
			if strings.Contains(location, strings.ToLower(region)) {
				score += weightLocation
				matches = append(matches, MatchLocation)
				break
			}
		}
	}

	// Direct contact channels.
	if !model.IsSentinel(raw.Str(model.KeyEmail)) {
		score += weightEmail
		matches = append(matches, MatchEmail)
	}
	if !model.IsSentinel(raw.Str(model.KeyLinkedIn)) {
		score += weightLinkedIn
		matches = append(matches, MatchLinkedIn)
	}

	// Company size: textual overlap between the two bands, either direction.
	icpSize := strings.ToLower(strings.TrimSpace(icp.CompanySize))
	leadSize := strings.ToLower(strings.TrimSpace(raw.Str(model.KeyCompanySize)))
	if icpSize != "" && leadSize != "" && !model.IsSentinel(raw.Str(model.KeyCompanySize)) {
		if strings.Contains(leadSize, icpSize) || strings.Contains(icpSize, leadSize) {
			score += weightSize
			matches = append(matches, MatchSize)
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Confidence{
		Percentage: score,
		Grade:      gradeFor(score),
		Matches:    matches,
	}
}

// gradeFor maps a percentage to a letter grade. Boundaries are exact:
// 80→A, 79→B, 60→B, 59→C, 40→C, 39→D.
func gradeFor(pct float64) string {
	switch {
	case pct >= 80:
		return "A"
	case pct >= 60:
		return "B"
	case pct >= 40:
		return "C"
	default:
		return "D"
	}
}

// Recommendation maps a confidence percentage to an outreach action.
func Recommendation(pct float64) string {
	switch {
	case pct >= 80:
		return "PRIORITY: High-value lead, initiate outreach immediately"
	case pct >= 60:
		return "QUALIFIED: Good fit, add to outreach campaign"
	case pct >= 40:
		return "NURTURE: Potential fit, add to nurture sequence"
	default:
		return "RESEARCH: Requires further qualification"
	}
}

// Insights builds human-readable notes about why a lead scored the way it
// did: the overall-match sentence first, then per-criterion notes in a
// fixed order, only for criteria that matched.
func Insights(lead model.Lead, conf Confidence) []string {
	matched := make(map[string]bool, len(conf.Matches))
	for _, m := range conf.Matches {
		matched[m] = true
	}

	var insights []string
	switch {
	case conf.Percentage >= 80:
		insights = append(insights, "Excellent match: this lead closely aligns with the target profile")
	case conf.Percentage >= 60:
		insights = append(insights, "Good match with most key criteria met")
	default:
		insights = append(insights, "Partial match, review carefully before outreach")
	}

	if matched[MatchIndustry] {
		insights = append(insights, fmt.Sprintf("Industry alignment: %s", lead.Company.Industry))
	}
	if matched[MatchJobTitle] {
		insights = append(insights, fmt.Sprintf("Decision-maker identified: %s", lead.Identity.Designation))
	}
	if matched[MatchEmail] {
		insights = append(insights, "Direct contact email available")
	}
	if matched[MatchLinkedIn] {
		insights = append(insights, "LinkedIn profile available for outreach")
	}

	return insights
}
