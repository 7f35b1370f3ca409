package analytics

// MaxSubScore bounds each recorded sub-score, which keeps every total and average exact.
const MaxSubScore = 1000

// Scores holds the four sub-scores recorded for a single test result.
type Scores struct {
	LeftHand  int `json:"leftHand"`
	RightHand int `json:"rightHand"`
	Forehand  int `json:"forehand"`
	Backhand  int `json:"backhand"`
}

// Distribution pairs the raw sub-scores with the hand and stroke subtotals used for balance analysis.
type Distribution struct {
	LeftHand    int `json:"leftHand"`
	RightHand   int `json:"rightHand"`
	Forehand    int `json:"forehand"`
	Backhand    int `json:"backhand"`
	HandTotal   int `json:"handTotal"`
	StrokeTotal int `json:"strokeTotal"`
}

// Summary is the aggregate view of a set of Scores.
type Summary struct {
	TotalScore        int          `json:"totalScore"`
	AverageScore      float64      `json:"averageScore"`
	HighestScore      int          `json:"highestScore"`
	LowestScore       int          `json:"lowestScore"`
	ScoreDistribution Distribution `json:"scoreDistribution"`
}

// Values returns the sub-scores in a fixed order: left hand, right hand, forehand, backhand.
func (s Scores) Values() [4]int {
	return [4]int{s.LeftHand, s.RightHand, s.Forehand, s.Backhand}
}

// Total is the exact sum of the four sub-scores.
func (s Scores) Total() int {
	return s.LeftHand + s.RightHand + s.Forehand + s.Backhand
}

// Aggregate computes the summary metrics for s.
// AverageScore is total/4 as a float64, which is exact for any integer total, so no rounding is applied.
func Aggregate(s Scores) Summary {
	values := s.Values()
	highest, lowest := values[0], values[0]
	for _, v := range values[1:] {
		highest = max(highest, v)
		lowest = min(lowest, v)
	}
	total := s.Total()
	return Summary{
		TotalScore:   total,
		AverageScore: float64(total) / float64(len(values)),
		HighestScore: highest,
		LowestScore:  lowest,
		ScoreDistribution: Distribution{
			LeftHand:    s.LeftHand,
			RightHand:   s.RightHand,
			Forehand:    s.Forehand,
			Backhand:    s.Backhand,
			HandTotal:   s.LeftHand + s.RightHand,
			StrokeTotal: s.Forehand + s.Backhand,
		},
	}
}
