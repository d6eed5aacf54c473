package model

// Raw record keys the extraction oracle is instructed to emit. The oracle
// is adversarial input: any key may be missing, empty, mistyped, or carry
// the literal "Not found".
const (
	KeyLeadName         = "lead_name"
	KeyDesignation      = "designation"
	KeyCompanyName      = "company_name"
	KeySource           = "source"
	KeyEmail            = "email"
	KeyPhone            = "phone"
	KeyLinkedIn         = "linkedin"
	KeySocialProfiles   = "social_profiles"
	KeyCompanyAbout     = "company_about"
	KeyCompanyIndustry  = "company_industry"
	KeyCompanySize      = "company_size"
	KeyCompanyLocation  = "company_location"
	KeyCompanyWebsite   = "company_website"
	KeyCompanyEmail     = "company_email"
	KeyCompanyPhone     = "company_phone"
	KeyCompanyAddress   = "company_address"
	KeyCompanyValuation = "company_valuation"
	KeyCompanyTech      = "company_tech"
	KeyCompanyRevenue   = "company_revenue"
	KeyCompanyFounded   = "company_founded"
	KeyCompanyNews      = "company_news"
)

// RawLead is one loosely-typed record decoded from the oracle's reply.
// No invariants hold on it; every accessor degrades to a zero value.
type RawLead map[string]any

// Str returns the value at key coerced to a string, or "" when the key is
// absent or holds a non-string value.
func (r RawLead) Str(key string) string {
	if r == nil {
		return ""
	}
	s, _ := r[key].(string)
	return s
}

// SocialProfiles coerces the social_profiles value into a string map.
// Any malformed shape (string, list, nested non-strings) yields an empty map.
func (r RawLead) SocialProfiles() map[string]string {
	out := map[string]string{}
	if r == nil {
		return out
	}
	raw, ok := r[KeySocialProfiles].(map[string]any)
	if !ok {
		return out
	}
	for k, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out[k] = s
		}
	}
	return out
}
