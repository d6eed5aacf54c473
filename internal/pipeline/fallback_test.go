package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen/internal/model"
)

func TestSampleLeads(t *testing.T) {
	t.Parallel()

	icp := fullICP()
	samples := SampleLeads(icp)
	require.Len(t, samples, 3)

	names := make([]string, 0, len(samples))
	for _, s := range samples {
		names = append(names, s.Str(model.KeyLeadName))

		// ICP fields propagate into every sample.
		assert.Equal(t, icp.Industry, s.Str(model.KeyCompanyIndustry))
		assert.Equal(t, icp.CompanySize, s.Str(model.KeyCompanySize))
		assert.Equal(t, "USA", s.Str(model.KeyCompanyLocation))
		assert.Equal(t, "CTO", s.Str(model.KeyDesignation))
	}
	assert.Equal(t, []string{"Sarah Johnson", "Michael Chen", "Emily Rodriguez"}, names)
}

func TestSampleLeads_StructureAndScoreCleanly(t *testing.T) {
	t.Parallel()

	icp := fullICP()
	for _, raw := range SampleLeads(icp) {
		lead := StructureLead(raw, icp)
		assert.NotEmpty(t, lead.ID)
		assert.Equal(t, icp.Industry, lead.Company.Industry)
		assert.GreaterOrEqual(t, lead.Analysis.ConfidenceScore, 60.0,
			"samples are derived from the ICP and must score well")
		assert.False(t, lead.Identity.Contact.EmailGenerated)
	}
}
