package analytics

// Dominance labels reported in a Balance.
const (
	DominantLeft     = "left"
	DominantRight    = "right"
	DominantForehand = "forehand"
	DominantBackhand = "backhand"
	DominantBalanced = "balanced"
)

// Balance compares two paired sub-scores.
type Balance struct {
	Dominant   string   `json:"dominant"`
	Difference int      `json:"difference"`
	Ratio      *float64 `json:"ratio,omitempty"`
}

// Analysis is the structured hand and stroke comparison for one result.
type Analysis struct {
	Hand     Balance `json:"hand"`
	Stroke   Balance `json:"stroke"`
	Balanced bool    `json:"balanced"`
}

// Analyzer maps aggregate metrics onto categories and balance reports.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer builds an Analyzer from cfg. The config is expected to have passed Validate.
func NewAnalyzer(cfg Config) *Analyzer {
	categories := make([]Threshold, len(cfg.Categories))
	copy(categories, cfg.Categories)
	cfg.Categories = categories
	return &Analyzer{cfg: cfg}
}

// Config returns a copy of the analyzer's configuration.
func (a *Analyzer) Config() Config {
	cfg := a.cfg
	cfg.Categories = append([]Threshold(nil), a.cfg.Categories...)
	return cfg
}

// Category returns the label of the first threshold whose MinTotal is reached.
func (a *Analyzer) Category(total int) string {
	for _, t := range a.cfg.Categories {
		if total >= t.MinTotal {
			return t.Label
		}
	}
	return a.cfg.Categories[len(a.cfg.Categories)-1].Label
}

// IsCategory reports whether label is one of the configured categories.
func (a *Analyzer) IsCategory(label string) bool {
	for _, t := range a.cfg.Categories {
		if t.Label == label {
			return true
		}
	}
	return false
}

// Analyze compares left against right hand and forehand against backhand.
func (a *Analyzer) Analyze(s Scores) Analysis {
	hand := a.balance(s.LeftHand, s.RightHand, DominantLeft, DominantRight)
	stroke := a.balance(s.Forehand, s.Backhand, DominantForehand, DominantBackhand)
	return Analysis{
		Hand:     hand,
		Stroke:   stroke,
		Balanced: hand.Dominant == DominantBalanced && stroke.Dominant == DominantBalanced,
	}
}

func (a *Analyzer) balance(first, second int, firstLabel, secondLabel string) Balance {
	b := Balance{Difference: first - second}
	if second != 0 {
		ratio := float64(first) / float64(second)
		b.Ratio = &ratio
	}
	switch {
	case abs(b.Difference) <= a.cfg.BalanceTolerance:
		b.Dominant = DominantBalanced
	case b.Difference > 0:
		b.Dominant = firstLabel
	default:
		b.Dominant = secondLabel
	}
	return b
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
