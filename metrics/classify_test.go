package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDepartment(t *testing.T) {
	tests := []struct {
		title string
		want  Department
		ok    bool
	}{
		{"Head of SEO", DepartmentSEO, true},
		{"seo specialist", DepartmentSEO, true},
		{"SEO Manager", DepartmentSEO, true}, // seo outranks manager
		{"VP Marketing", DepartmentManagement, true},
		{"Director of Growth", DepartmentManagement, true},
		{"Product Manager", DepartmentManagement, true},
		{"Marketing Associate", DepartmentGeneral, true},
		{"Sales Rep", "", false},
		{"", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, ok := ClassifyDepartment(tt.title)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextBestAction(t *testing.T) {
	tests := []struct {
		name string
		in   Counters
		want Action
	}{
		{"few accounts short-circuits before any division", Counters{Accounts: 5, Leads: 0}, ActionRevealContacts},
		{"zero everything", Counters{}, ActionRevealContacts},
		{"few leads", Counters{Accounts: 10, Leads: 29}, ActionBringLeads},
		{"little engagement", Counters{Accounts: 10, Leads: 30, Engaged: 29}, ActionWaitEngagement},
		{"mostly exhausted", Counters{Accounts: 10, Leads: 100, Engaged: 50, Exhausted: 71, Opportunities: 1}, ActionModifyCampaign},
		{"exhausted but converting", Counters{Accounts: 10, Leads: 100, Engaged: 50, Exhausted: 71, Opportunities: 2}, ActionDisqualifyCadence},
		{"ratio exactly at threshold", Counters{Accounts: 10, Leads: 100, Engaged: 50, Exhausted: 70}, ActionDisqualifyCadence},
		{"healthy", Counters{Accounts: 40, Leads: 200, Engaged: 120, Exhausted: 10, Opportunities: 5}, ActionDisqualifyCadence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextBestAction(tt.in))
		})
	}
}

func TestExhaustedRatioFloorsLeads(t *testing.T) {
	assert.Equal(t, 3.0, Counters{Exhausted: 3}.ExhaustedRatio())
	assert.Equal(t, 0.5, Counters{Leads: 4, Exhausted: 2}.ExhaustedRatio())
}
