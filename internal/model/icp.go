// Package model defines the core domain types for the lead generation pipeline.
package model

import (
	"fmt"
	"sort"
	"strings"
)

// ICP is an Ideal Customer Profile: the targeting criteria incoming leads
// are judged against. All nine fields are required; an empty field is a
// validation failure, never a default.
type ICP struct {
	ICPName          string `json:"icp_name"`
	Industry         string `json:"industry"`
	CompanySize      string `json:"company_size"`
	TargetJobTitle   string `json:"target_job_title"`
	GeographicRegion string `json:"geographic_region"`
	TechnologyUsed   string `json:"technology_used"`
	PainPoints       string `json:"pain_points"`
	MinBudget        string `json:"min_budget"`
	MaxBudget        string `json:"max_budget"`
}

// ValidationError reports the required ICP fields that were missing or empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("icp: missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate checks that all nine required fields are present and non-empty.
// Returns a *ValidationError with the missing field names sorted
// alphabetically, or nil if the profile is complete.
func (icp ICP) Validate() error {
	fields := map[string]string{
		"icp_name":          icp.ICPName,
		"industry":          icp.Industry,
		"company_size":      icp.CompanySize,
		"target_job_title":  icp.TargetJobTitle,
		"geographic_region": icp.GeographicRegion,
		"technology_used":   icp.TechnologyUsed,
		"pain_points":       icp.PainPoints,
		"min_budget":        icp.MinBudget,
		"max_budget":        icp.MaxBudget,
	}

	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &ValidationError{Missing: missing}
}

// PrimaryJobTitle returns the first entry of the comma-separated title list.
func (icp ICP) PrimaryJobTitle() string {
	return firstCSV(icp.TargetJobTitle)
}

// PrimaryRegion returns the first entry of the comma-separated region list.
func (icp ICP) PrimaryRegion() string {
	return firstCSV(icp.GeographicRegion)
}

// JobTitles returns all entries of the comma-separated title list, trimmed.
func (icp ICP) JobTitles() []string {
	return splitCSV(icp.TargetJobTitle)
}

// Regions returns all entries of the comma-separated region list, trimmed.
func (icp ICP) Regions() []string {
	return splitCSV(icp.GeographicRegion)
}

// Technologies returns all entries of the comma-separated technology list, trimmed.
func (icp ICP) Technologies() []string {
	return splitCSV(icp.TechnologyUsed)
}

func firstCSV(s string) string {
	parts := splitCSV(s)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func splitCSV(s string) []string {
	var result []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
