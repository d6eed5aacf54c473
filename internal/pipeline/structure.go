package pipeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/sells-group/leadgen/internal/model"
)

// maxAlternativeEmails caps how many synthesized patterns are kept beyond
// the working address.
const maxAlternativeEmails = 3

// StructureLead normalizes one raw oracle record into a canonical Lead.
// It is total: every missing or malformed field maps to a sentinel, and
// no input can make it fail.
func StructureLead(raw model.RawLead, icp model.ICP) model.Lead {
	contact := model.ContactDetails{
		Email:             fieldOr(raw.Str(model.KeyEmail), model.NotFound),
		AlternativeEmails: []string{},
		Phone:             fieldOr(raw.Str(model.KeyPhone), model.NotFound),
		LinkedIn:          fieldOr(raw.Str(model.KeyLinkedIn), model.NotFound),
		SocialProfiles:    raw.SocialProfiles(),
	}

	// Synthesize an email guess when extraction found none but we have a
	// person name and a company website to derive patterns from.
	if model.IsSentinel(contact.Email) {
		patterns := GenerateEmailPatterns(raw.Str(model.KeyLeadName), raw.Str(model.KeyCompanyWebsite))
		if len(patterns) > 0 {
			contact.Email = patterns[0]
			contact.EmailGenerated = true
			alts := patterns[1:]
			if len(alts) > maxAlternativeEmails {
				alts = alts[:maxAlternativeEmails]
			}
			contact.AlternativeEmails = alts
		}
	}

	lead := model.Lead{
		ID: uuid.New().String(),
		Identity: model.Identity{
			Name:        fieldOr(raw.Str(model.KeyLeadName), model.NotAvailable),
			Designation: fieldOr(raw.Str(model.KeyDesignation), model.NotAvailable),
			CompanyName: fieldOr(raw.Str(model.KeyCompanyName), model.NotAvailable),
			Source:      fieldOr(raw.Str(model.KeySource), "Web Search"),
			Contact:     contact,
		},
		Company: model.Company{
			Name:     fieldOr(raw.Str(model.KeyCompanyName), model.NotAvailable),
			About:    fieldOr(raw.Str(model.KeyCompanyAbout), model.NotAvailable),
			Industry: fieldOr(raw.Str(model.KeyCompanyIndustry), model.NotAvailable),
			Size:     fieldOr(raw.Str(model.KeyCompanySize), model.NotAvailable),
			Location: fieldOr(raw.Str(model.KeyCompanyLocation), model.NotAvailable),
			Website:  fieldOr(raw.Str(model.KeyCompanyWebsite), model.NotAvailable),
			Contact: model.CompanyContact{
				Email: fieldOr(raw.Str(model.KeyCompanyEmail), model.NotFound),
				Phone: fieldOr(raw.Str(model.KeyCompanyPhone), model.NotFound),
			},
			Address:    fieldOr(raw.Str(model.KeyCompanyAddress), model.NotFound),
			Valuation:  fieldOr(raw.Str(model.KeyCompanyValuation), model.NotFound),
			TechStack:  fieldOr(raw.Str(model.KeyCompanyTech), model.NotFound),
			Revenue:    fieldOr(raw.Str(model.KeyCompanyRevenue), model.NotFound),
			Founded:    fieldOr(raw.Str(model.KeyCompanyFounded), model.NotFound),
			RecentNews: fieldOr(raw.Str(model.KeyCompanyNews), model.NotFound),
		},
	}

	conf := Score(raw, icp)
	lead.Analysis = model.Analysis{
		ConfidenceScore:  conf.Percentage,
		Grade:            conf.Grade,
		MatchingCriteria: conf.Matches,
		Recommendation:   Recommendation(conf.Percentage),
		Completeness:     completeness(lead),
		ContactQuality:   contactQuality(lead),
	}
	lead.Analysis.Insights = Insights(lead, conf)

	return lead
}

// fieldOr returns the value, or the sentinel when it is empty or already
// a placeholder.
func fieldOr(value, sentinel string) string {
	if model.IsSentinel(strings.TrimSpace(value)) {
		return sentinel
	}
	return strings.TrimSpace(value)
}

// GenerateEmailPatterns derives up to seven plausible addresses from a
// person name and a company website. The name must have at least two
// space-separated tokens; otherwise no patterns are generated. These are
// heuristic guesses, never verified addresses.
func GenerateEmailPatterns(name, website string) []string {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	if len(tokens) < 2 {
		return nil
	}
	domain := BareDomain(website)
	if domain == "" {
		return nil
	}

	first := sanitizeNameToken(tokens[0])
	last := sanitizeNameToken(tokens[len(tokens)-1])
	if first == "" || last == "" {
		return nil
	}
	initial := first[:1]

	return []string{
		fmt.Sprintf("%s.%s@%s", first, last, domain),
		fmt.Sprintf("%s%s@%s", first, last, domain),
		fmt.Sprintf("%s@%s", first, domain),
		fmt.Sprintf("%s%s@%s", initial, last, domain),
		fmt.Sprintf("%s_%s@%s", first, last, domain),
		fmt.Sprintf("%s.%s@%s", last, first, domain),
		fmt.Sprintf("%s.%s@%s", initial, last, domain),
	}
}

// BareDomain strips the scheme, www. prefix, path, and port from a
// website value, returning only the registrable host. Returns "" when no
// host remains.
func BareDomain(website string) string {
	s := strings.TrimSpace(website)
	if model.IsSentinel(s) {
		return ""
	}
	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+3:]
	}
	if idx := strings.IndexAny(s, "/?#"); idx >= 0 {
		s = s[:idx]
	}
	if idx := strings.Index(s, ":"); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimPrefix(strings.ToLower(s), "www.")
	if !strings.Contains(s, ".") {
		return ""
	}
	return s
}

// sanitizeNameToken keeps only letters and digits so punctuation in names
// ("O'Brien", "Smith-Jones") yields a usable mailbox token.
func sanitizeNameToken(token string) string {
	var b strings.Builder
	for _, r := range token {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// completenessFields is the fixed key-field checklist the completeness
// metric is computed over.
func completenessFields(lead model.Lead) []string {
	return []string{
		lead.Identity.Name,
		lead.Identity.Designation,
		lead.Identity.CompanyName,
		lead.Identity.Contact.Email,
		lead.Identity.Contact.Phone,
		lead.Identity.Contact.LinkedIn,
		lead.Company.About,
		lead.Company.Website,
		lead.Company.Location,
		lead.Company.Size,
		lead.Company.Industry,
	}
}

// completeness counts populated-vs-sentinel fields over the checklist.
func completeness(lead model.Lead) model.Completeness {
	fields := completenessFields(lead)
	populated := 0
	for _, f := range fields {
		if !model.IsSentinel(f) {
			populated++
		}
	}

	pct := float64(populated) / float64(len(fields)) * 100
	pct = math.Round(pct*100) / 100

	status := model.CompletenessLimited
	switch {
	case pct >= 80:
		status = model.CompletenessComplete
	case pct >= 50:
		status = model.CompletenessPartial
	}

	return model.Completeness{Percentage: pct, Status: status}
}

// contactQuality is High when a real (non-synthesized) contact channel
// exists, Low otherwise.
func contactQuality(lead model.Lead) string {
	emailReal := !model.IsSentinel(lead.Identity.Contact.Email) && !lead.Identity.Contact.EmailGenerated
	phoneReal := !model.IsSentinel(lead.Identity.Contact.Phone)
	if emailReal || phoneReal {
		return model.ContactQualityHigh
	}
	return model.ContactQualityLow
}
