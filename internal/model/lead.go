package model

import "time"

// Sentinel values denoting a field the extraction could not populate.
// Contact-style fields use NotFound; descriptive fields use NotAvailable.
const (
	NotFound     = "Not found"
	NotAvailable = "N/A"
)

// Completeness statuses over the key-field checklist.
const (
	CompletenessComplete = "Complete"
	CompletenessPartial  = "Partial"
	CompletenessLimited  = "Limited"
)

// Contact quality labels.
const (
	ContactQualityHigh = "High"
	ContactQualityLow  = "Low"
)

// Lead is one scored candidate. Created once by the structurer, immutable
// afterward, ordered by the orchestrator, and discarded with the response.
// Every field is always present: either a real value or a sentinel.
type Lead struct {
	ID       string   `json:"id"`
	Identity Identity `json:"lead"`
	Company  Company  `json:"company"`
	Analysis Analysis `json:"ai_analysis"`
}

// Identity names the person behind the lead.
type Identity struct {
	Name        string         `json:"name"`
	Designation string         `json:"designation"`
	CompanyName string         `json:"company_name"`
	Source      string         `json:"source"`
	Contact     ContactDetails `json:"contact_details"`
}

// ContactDetails holds how the person can be reached. Email may be a
// synthesized guess, in which case EmailGenerated is true and up to three
// alternative patterns are retained.
type ContactDetails struct {
	Email             string            `json:"email"`
	EmailGenerated    bool              `json:"email_generated"`
	AlternativeEmails []string          `json:"alternative_emails"`
	Phone             string            `json:"phone"`
	LinkedIn          string            `json:"linkedin"`
	SocialProfiles    map[string]string `json:"social_profiles"`
}

// Company describes the lead's employer.
type Company struct {
	Name       string         `json:"name"`
	About      string         `json:"about"`
	Industry   string         `json:"industry"`
	Size       string         `json:"size"`
	Location   string         `json:"location"`
	Website    string         `json:"website"`
	Contact    CompanyContact `json:"contact_info"`
	Address    string         `json:"address"`
	Valuation  string         `json:"valuation"`
	TechStack  string         `json:"tech_stack"`
	Revenue    string         `json:"revenue"`
	Founded    string         `json:"founded"`
	RecentNews string         `json:"recent_news"`
}

// CompanyContact holds company-level contact channels.
type CompanyContact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Analysis carries the ICP-fit scoring attached to a lead.
type Analysis struct {
	ConfidenceScore  float64      `json:"confidence_score"`
	Grade            string       `json:"grade"`
	MatchingCriteria []string     `json:"matching_criteria"`
	Insights         []string     `json:"insights"`
	Recommendation   string       `json:"recommendation"`
	Completeness     Completeness `json:"data_completeness"`
	ContactQuality   string       `json:"contact_quality"`
}

// Completeness is the percentage of key fields populated with real values.
type Completeness struct {
	Percentage float64 `json:"percentage"`
	Status     string  `json:"status"`
}

// Run is one audit-log row for a processed lead search. Leads themselves
// are never persisted; runs record only operational metadata.
type Run struct {
	ID           string    `json:"id"`
	ICPName      string    `json:"icp_name"`
	TotalLeads   int       `json:"total_leads"`
	UsedFallback bool      `json:"used_fallback"`
	DurationMS   int64     `json:"duration_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsSentinel reports whether v is empty or one of the placeholder values.
func IsSentinel(v string) bool {
	return v == "" || v == NotFound || v == NotAvailable
}
