// ABOUTME: Seeded generator for the illustrative prospecting dashboard
// ABOUTME: Produces use-case, account, and intent tables; nothing here touches the store
package demo

import (
	"fmt"
	"math/rand"

	"github.com/harperreed/outlab/metrics"
)

// Counts shared by every demo row.
type Counts struct {
	Accounts       int            `json:"accounts"`
	Leads          int            `json:"leads"`
	Engaged        int            `json:"engaged"`
	Exhausted      int            `json:"exhausted"`
	Opportunities  int            `json:"opportunities"`
	NextBestAction metrics.Action `json:"next_best_action"`
}

type UseCaseRow struct {
	UseCase string `json:"use_case"`
	Persona string `json:"persona"`
	Counts
}

type AccountRow struct {
	Account  string `json:"account"`
	Industry string `json:"industry"`
	Signals  int    `json:"signals"`
	Counts
}

type IntentRow struct {
	Topic       string `json:"topic"`
	IntentScore int    `json:"intent_score"`
	Counts
}

type Dashboard struct {
	Seed        int64        `json:"seed"`
	UseCaseRows []UseCaseRow `json:"use_case_rows"`
	AccountRows []AccountRow `json:"account_rows"`
	IntentRows  []IntentRow  `json:"intent_rows"`
}

var (
	useCases   = []string{"SEO audit", "Content velocity", "Attribution cleanup", "Site migration", "Localization", "Page speed"}
	personas   = []string{"Head of SEO", "VP Marketing", "Content Director", "Growth Manager", "Marketing Ops"}
	companies  = []string{"Acme", "Globex", "Initech", "Umbrella", "Hooli", "Stark", "Wayne", "Tyrell", "Soylent", "Cyberdyne"}
	industries = []string{"SaaS", "Retail", "Fintech", "Healthcare", "Media"}
	topics     = []string{"technical seo", "core web vitals", "content ops", "headless cms", "ai search", "link building"}
)

// MaxRows caps the rows generated per table.
const MaxRows = 100

// Generate builds n rows per table, clamped to [0, MaxRows]. The same seed
// always yields the same dashboard.
func Generate(seed int64, n int) Dashboard {
	if n < 0 {
		n = 0
	}
	if n > MaxRows {
		n = MaxRows
	}
	rng := rand.New(rand.NewSource(seed))
	d := Dashboard{Seed: seed}

	for i := 0; i < n; i++ {
		d.UseCaseRows = append(d.UseCaseRows, UseCaseRow{
			UseCase: pick(useCases, i),
			Persona: personas[rng.Intn(len(personas))],
			Counts:  randomCounts(rng, 60, 200),
		})
	}

	for i := 0; i < n; i++ {
		counts := randomCounts(rng, 1, 60)
		counts.Accounts = 1
		counts.NextBestAction = metrics.NextBestAction(toCounters(counts))
		d.AccountRows = append(d.AccountRows, AccountRow{
			Account:  pick(companies, i),
			Industry: industries[rng.Intn(len(industries))],
			Signals:  rng.Intn(6),
			Counts:   counts,
		})
	}

	for i := 0; i < n; i++ {
		d.IntentRows = append(d.IntentRows, IntentRow{
			Topic:       pick(topics, i),
			IntentScore: 40 + rng.Intn(61),
			Counts:      randomCounts(rng, 20, 120),
		})
	}

	return d
}

// pick cycles through names, suffixing a round number once they run out.
func pick(names []string, i int) string {
	name := names[i%len(names)]
	if round := i / len(names); round > 0 {
		name = fmt.Sprintf("%s #%d", name, round+1)
	}
	return name
}

func randomCounts(rng *rand.Rand, maxAccounts, maxLeads int) Counts {
	c := Counts{
		Accounts: 1 + rng.Intn(maxAccounts),
		Leads:    rng.Intn(maxLeads + 1),
	}
	if c.Leads > 0 {
		c.Engaged = rng.Intn(c.Leads + 1)
		c.Exhausted = rng.Intn(c.Leads + 1)
	}
	c.Opportunities = rng.Intn(c.Engaged/5 + 1)
	c.NextBestAction = metrics.NextBestAction(toCounters(c))
	return c
}

func toCounters(c Counts) metrics.Counters {
	return metrics.Counters{
		Accounts:      c.Accounts,
		Leads:         c.Leads,
		Engaged:       c.Engaged,
		Exhausted:     c.Exhausted,
		Opportunities: c.Opportunities,
	}
}
