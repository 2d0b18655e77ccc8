// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

// Tier groups phrases that contribute the same number of points. Tiers are
// ordered highest first; only the best matching tier counts.
type Tier struct {
	Points float64  `json:"points" yaml:"points"`
	Terms  []string `json:"terms" yaml:"terms"`
}

// Vocabulary is the immutable lookup data behind the scoring engine. It is
// injected at construction so deployments (and tests) can swap domain
// vocabularies without touching engine logic.
type Vocabulary struct {
	// TitleTopTerms and TitleMidTerms feed the title technical-density
	// signal at 10 and 4 points per hit respectively.
	TitleTopTerms []string `json:"title_top_terms" yaml:"title_top_terms"`
	TitleMidTerms []string `json:"title_mid_terms" yaml:"title_mid_terms"`

	// MethodVerbs mark abstracts that state a contribution.
	MethodVerbs []string `json:"method_verbs" yaml:"method_verbs"`

	// CategoryWeights maps source taxonomy tags to importance points.
	// Only the highest-scoring matching category counts.
	CategoryWeights map[string]float64 `json:"category_weights" yaml:"category_weights"`

	// DomainTiers is the deployment-specific subject vocabulary, ordered
	// highest tier first.
	DomainTiers []Tier `json:"domain_tiers" yaml:"domain_tiers"`

	// RelatedTerms is a small thesaurus from configured user keywords to
	// terms that signal the same topic.
	RelatedTerms map[string][]string `json:"related_terms" yaml:"related_terms"`

	// CategoryStems maps taxonomy tags to keyword stems topically
	// associated with them.
	CategoryStems map[string][]string `json:"category_stems" yaml:"category_stems"`
}

// DefaultVocabulary returns the stock vocabulary for the energy and
// forecasting deployment this system ships with.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		TitleTopTerms: []string{
			"machine learning", "deep learning", "neural network",
			"reinforcement learning", "transformer", "generative",
		},
		TitleMidTerms: []string{
			"optimization", "prediction", "forecasting", "forecast",
			"classification", "estimation", "detection", "control",
		},
		MethodVerbs: []string{
			"propose", "present", "introduce", "develop", "demonstrate", "evaluate",
		},
		CategoryWeights: map[string]float64{
			"cs.AI":          15,
			"cs.LG":          15,
			"stat.ML":        14,
			"cs.CV":          12,
			"cs.CL":          12,
			"cs.NE":          10,
			"eess.SP":        10,
			"eess.SY":        10,
			"cs.SY":          9,
			"math.OC":        8,
			"stat.AP":        8,
			"cs.DC":          6,
			"physics.soc-ph": 5,
		},
		DomainTiers: []Tier{
			{Points: 15, Terms: []string{
				"smart grid ai", "machine learning energy prediction",
				"deep learning power forecast", "ai renewable energy forecast",
				"digital twin energy", "federated learning energy",
			}},
			{Points: 10, Terms: []string{
				"power forecast", "demand forecast", "energy forecast",
				"solar forecast", "wind power", "photovoltaic",
				"load forecast", "smart meter",
			}},
			{Points: 6, Terms: []string{
				"smart grid", "renewable energy", "energy storage",
				"electricity market", "microgrid",
			}},
			{Points: 3, Terms: []string{
				"internet of things", "edge computing", "sensor network",
				"time series",
			}},
		},
		RelatedTerms: map[string][]string{
			"machine learning": {"neural network", "deep learning", "supervised learning"},
			"forecasting":      {"prediction", "time series", "forecast"},
			"smart grid":       {"power grid", "distribution network", "demand response"},
			"renewable energy": {"solar", "wind", "photovoltaic"},
		},
		CategoryStems: map[string][]string{
			"cs.AI":   {"intelligence", "reasoning", "agent"},
			"cs.LG":   {"learning", "neural", "model"},
			"cs.CV":   {"vision", "image"},
			"stat.ML": {"learning", "statistical"},
			"eess.SP": {"signal", "series"},
			"eess.SY": {"grid", "control", "system"},
			"math.OC": {"optimization", "control"},
			"stat.AP": {"forecast", "statistics"},
		},
	}
}
