package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen/internal/model"
)

func TestStructureLead_EmptyRecord(t *testing.T) {
	t.Parallel()

	lead := StructureLead(model.RawLead{}, fullICP())

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, model.NotAvailable, lead.Identity.Name)
	assert.Equal(t, model.NotAvailable, lead.Identity.Designation)
	assert.Equal(t, model.NotAvailable, lead.Identity.CompanyName)
	assert.Equal(t, "Web Search", lead.Identity.Source)
	assert.Equal(t, model.NotFound, lead.Identity.Contact.Email)
	assert.False(t, lead.Identity.Contact.EmailGenerated)
	assert.Empty(t, lead.Identity.Contact.AlternativeEmails)
	assert.Equal(t, model.NotFound, lead.Identity.Contact.Phone)
	assert.Equal(t, model.NotFound, lead.Identity.Contact.LinkedIn)
	assert.NotNil(t, lead.Identity.Contact.SocialProfiles)

	assert.Equal(t, model.NotAvailable, lead.Company.About)
	assert.Equal(t, model.NotAvailable, lead.Company.Website)
	assert.Equal(t, model.NotFound, lead.Company.Contact.Email)
	assert.Equal(t, model.NotFound, lead.Company.Valuation)

	assert.Equal(t, 0.0, lead.Analysis.ConfidenceScore)
	assert.Equal(t, "D", lead.Analysis.Grade)
	assert.Equal(t, 0.0, lead.Analysis.Completeness.Percentage)
	assert.Equal(t, model.CompletenessLimited, lead.Analysis.Completeness.Status)
	assert.Equal(t, model.ContactQualityLow, lead.Analysis.ContactQuality)
	assert.Contains(t, lead.Analysis.Recommendation, "RESEARCH")
}

func TestStructureLead_SynthesizesEmail(t *testing.T) {
	t.Parallel()

	raw := model.RawLead{
		model.KeyLeadName:       "Jane Doe",
		model.KeyCompanyWebsite: "https://www.acme.io/about",
		model.KeyEmail:          model.NotFound,
	}

	lead := StructureLead(raw, fullICP())

	assert.Equal(t, "jane.doe@acme.io", lead.Identity.Contact.Email)
	assert.True(t, lead.Identity.Contact.EmailGenerated)
	require.Len(t, lead.Identity.Contact.AlternativeEmails, 3)
	assert.Equal(t, []string{
		"janedoe@acme.io",
		"jane@acme.io",
		"jdoe@acme.io",
	}, lead.Identity.Contact.AlternativeEmails)

	// A synthesized address never counts as a real contact channel.
	assert.Equal(t, model.ContactQualityLow, lead.Analysis.ContactQuality)
}

func TestStructureLead_RealEmailNotOverwritten(t *testing.T) {
	t.Parallel()

	raw := model.RawLead{
		model.KeyLeadName:       "Jane Doe",
		model.KeyCompanyWebsite: "acme.io",
		model.KeyEmail:          "jane.d@acme.io",
	}

	lead := StructureLead(raw, fullICP())
	assert.Equal(t, "jane.d@acme.io", lead.Identity.Contact.Email)
	assert.False(t, lead.Identity.Contact.EmailGenerated)
	assert.Empty(t, lead.Identity.Contact.AlternativeEmails)
	assert.Equal(t, model.ContactQualityHigh, lead.Analysis.ContactQuality)
}

func TestStructureLead_PhoneAloneIsHighQuality(t *testing.T) {
	t.Parallel()

	raw := model.RawLead{model.KeyPhone: "+1-415-555-0100"}
	lead := StructureLead(raw, fullICP())
	assert.Equal(t, model.ContactQualityHigh, lead.Analysis.ContactQuality)
}

func TestStructureLead_Completeness(t *testing.T) {
	t.Parallel()

	// 9 of the 11 checklist fields populated: 81.82% → Complete.
	raw := model.RawLead{
		model.KeyLeadName:        "Jane Doe",
		model.KeyDesignation:     "CTO",
		model.KeyCompanyName:     "Acme",
		model.KeyEmail:           "jane@acme.io",
		model.KeyPhone:           "+1-415-555-0100",
		model.KeyLinkedIn:        "linkedin.com/in/janedoe",
		model.KeyCompanyAbout:    "Payments infrastructure",
		model.KeyCompanyWebsite:  "acme.io",
		model.KeyCompanyLocation: "USA",
	}

	lead := StructureLead(raw, fullICP())
	assert.InDelta(t, 81.82, lead.Analysis.Completeness.Percentage, 0.001)
	assert.Equal(t, model.CompletenessComplete, lead.Analysis.Completeness.Status)
}

func TestStructureLead_CompletenessPartial(t *testing.T) {
	t.Parallel()

	// 6 of 11 fields: 54.55% → Partial.
	raw := model.RawLead{
		model.KeyLeadName:       "Jane Doe",
		model.KeyDesignation:    "CTO",
		model.KeyCompanyName:    "Acme",
		model.KeyEmail:          "jane@acme.io",
		model.KeyPhone:          "+1-415-555-0100",
		model.KeyCompanyWebsite: "acme.io",
	}

	lead := StructureLead(raw, fullICP())
	assert.InDelta(t, 54.55, lead.Analysis.Completeness.Percentage, 0.001)
	assert.Equal(t, model.CompletenessPartial, lead.Analysis.Completeness.Status)
}

func TestGenerateEmailPatterns(t *testing.T) {
	t.Parallel()

	patterns := GenerateEmailPatterns("Jane Doe", "https://www.acme.io/about")
	assert.Equal(t, []string{
		"jane.doe@acme.io",
		"janedoe@acme.io",
		"jane@acme.io",
		"jdoe@acme.io",
		"jane_doe@acme.io",
		"doe.jane@acme.io",
		"j.doe@acme.io",
	}, patterns)
}

func TestGenerateEmailPatterns_Degenerate(t *testing.T) {
	t.Parallel()

	assert.Nil(t, GenerateEmailPatterns("Jane", "acme.io"), "single name token")
	assert.Nil(t, GenerateEmailPatterns("", "acme.io"), "empty name")
	assert.Nil(t, GenerateEmailPatterns("Jane Doe", ""), "no website")
	assert.Nil(t, GenerateEmailPatterns("Jane Doe", model.NotAvailable), "sentinel website")
	assert.Nil(t, GenerateEmailPatterns("Jane Doe", "localhost"), "no dot in host")
}

func TestGenerateEmailPatterns_PunctuatedNames(t *testing.T) {
	t.Parallel()

	patterns := GenerateEmailPatterns("Mary O'Brien", "acme.io")
	require.NotEmpty(t, patterns)
	assert.Equal(t, "mary.obrien@acme.io", patterns[0])

	// Middle names collapse to first and last token.
	patterns = GenerateEmailPatterns("Jane Q. Doe", "acme.io")
	require.NotEmpty(t, patterns)
	assert.Equal(t, "jane.doe@acme.io", patterns[0])
}

func TestBareDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"https://www.acme.io/about", "acme.io"},
		{"http://acme.io", "acme.io"},
		{"www.acme.io", "acme.io"},
		{"acme.io:8080/path", "acme.io"},
		{"ACME.IO", "acme.io"},
		{"https://sub.acme.io/a?b=c#d", "sub.acme.io"},
		{"", ""},
		{model.NotAvailable, ""},
		{"nodomain", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BareDomain(tt.in), "input %q", tt.in)
	}
}
