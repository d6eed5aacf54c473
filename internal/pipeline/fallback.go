package pipeline

import (
	"fmt"

	"github.com/sells-group/leadgen/internal/model"
)

// SampleLeads fabricates a small fixed set of plausible raw records from
// the ICP fields alone. This is the demo/fallback path taken when search
// or extraction yields nothing; every sample still flows through the
// structurer and scorer so its shape matches real output.
func SampleLeads(icp model.ICP) []model.RawLead {
	title := icp.PrimaryJobTitle()
	region := icp.PrimaryRegion()

	return []model.RawLead{
		{
			model.KeyLeadName:         "Sarah Johnson",
			model.KeyDesignation:      title,
			model.KeyCompanyName:      "TechVentures Inc",
			model.KeySource:           "LinkedIn Search",
			model.KeyEmail:            "sarah.johnson@techventures.com",
			model.KeyPhone:            "+1-415-555-0123",
			model.KeyLinkedIn:         "linkedin.com/in/sarahjohnson",
			model.KeyCompanyAbout:     fmt.Sprintf("Leading company in the %s industry focused on innovation", icp.Industry),
			model.KeyCompanyIndustry:  icp.Industry,
			model.KeyCompanySize:      icp.CompanySize,
			model.KeyCompanyLocation:  region,
			model.KeyCompanyWebsite:   "www.techventures.com",
			model.KeyCompanyEmail:     "contact@techventures.com",
			model.KeyCompanyPhone:     "+1-415-555-0100",
			model.KeyCompanyAddress:   "123 Innovation Drive",
			model.KeyCompanyValuation: "50000000",
			model.KeyCompanyTech:      icp.TechnologyUsed,
		},
		{
			model.KeyLeadName:         "Michael Chen",
			model.KeyDesignation:      title,
			model.KeyCompanyName:      "Digital Dynamics",
			model.KeySource:           "Web Search",
			model.KeyEmail:            "mchen@digitaldynamics.io",
			model.KeyPhone:            model.NotFound,
			model.KeyLinkedIn:         "linkedin.com/in/michaelchen",
			model.KeyCompanyAbout:     fmt.Sprintf("Innovative %s solutions provider", icp.Industry),
			model.KeyCompanyIndustry:  icp.Industry,
			model.KeyCompanySize:      icp.CompanySize,
			model.KeyCompanyLocation:  region,
			model.KeyCompanyWebsite:   "www.digitaldynamics.io",
			model.KeyCompanyEmail:     "info@digitaldynamics.io",
			model.KeyCompanyPhone:     model.NotFound,
			model.KeyCompanyAddress:   model.NotFound,
			model.KeyCompanyValuation: "25000000",
			model.KeyCompanyTech:      icp.TechnologyUsed,
		},
		{
			model.KeyLeadName:         "Emily Rodriguez",
			model.KeyDesignation:      title,
			model.KeyCompanyName:      "Innovate Solutions",
			model.KeySource:           "Company Website",
			model.KeyEmail:            "e.rodriguez@innovatesolutions.com",
			model.KeyPhone:            "+1-212-555-0156",
			model.KeyLinkedIn:         "linkedin.com/in/emilyrodriguez",
			model.KeyCompanyAbout:     fmt.Sprintf("Transforming %s through technology", icp.Industry),
			model.KeyCompanyIndustry:  icp.Industry,
			model.KeyCompanySize:      icp.CompanySize,
			model.KeyCompanyLocation:  region,
			model.KeyCompanyWebsite:   "www.innovatesolutions.com",
			model.KeyCompanyEmail:     "hello@innovatesolutions.com",
			model.KeyCompanyPhone:     "+1-212-555-0150",
			model.KeyCompanyAddress:   "456 Tech Plaza",
			model.KeyCompanyValuation: "75000000",
			model.KeyCompanyTech:      icp.TechnologyUsed,
		},
	}
}
