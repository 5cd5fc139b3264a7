// ABOUTME: Pure classifiers used by the metrics engine
// ABOUTME: Maps job titles to marketing departments and counters to a next best action
package metrics

import "strings"

type Department string

const (
	DepartmentSEO        Department = "Marketing: SEO"
	DepartmentManagement Department = "Marketing: Management"
	DepartmentGeneral    Department = "Marketing: General"
)

var managementKeywords = []string{"vp", "head", "director", "manager"}

// ClassifyDepartment matches the title case-insensitively; the first rule that
// hits wins. Titles matching nothing report ok == false.
func ClassifyDepartment(title string) (Department, bool) {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return "", false
	}

	if strings.Contains(t, "seo") {
		return DepartmentSEO, true
	}
	for _, kw := range managementKeywords {
		if strings.Contains(t, kw) {
			return DepartmentManagement, true
		}
	}
	if strings.Contains(t, "marketing") {
		return DepartmentGeneral, true
	}
	return "", false
}

type Action string

const (
	ActionRevealContacts    Action = "Reveal More Contacts"
	ActionBringLeads        Action = "Bring more leads"
	ActionWaitEngagement    Action = "Wait for more engagement"
	ActionModifyCampaign    Action = "Consider modify campaign"
	ActionDisqualifyCadence Action = "Consider disqualify cadence"
)

// Counters are the inputs to NextBestAction.
type Counters struct {
	Accounts      int
	Leads         int
	Engaged       int
	Exhausted     int
	Opportunities int
}

// Thresholds for NextBestAction.
const (
	minAccounts       = 10
	minLeads          = 30
	minEngaged        = 30
	maxExhaustedRatio = 0.70
	minOpportunities  = 2
)

// ExhaustedRatio is exhausted over leads, with leads floored at 1.
func (c Counters) ExhaustedRatio() float64 {
	leads := c.Leads
	if leads < 1 {
		leads = 1
	}
	return float64(c.Exhausted) / float64(leads)
}

// NextBestAction walks the rules in priority order and always returns a label.
func NextBestAction(c Counters) Action {
	switch {
	case c.Accounts < minAccounts:
		return ActionRevealContacts
	case c.Leads < minLeads:
		return ActionBringLeads
	case c.Engaged < minEngaged:
		return ActionWaitEngagement
	case c.ExhaustedRatio() > maxExhaustedRatio && c.Opportunities < minOpportunities:
		return ActionModifyCampaign
	default:
		return ActionDisqualifyCadence
	}
}
