package model

// MatchResult is the outcome of scoring a resume against a job description.
// Score is conventionally 0-100 but no bound is enforced.
type MatchResult struct {
	Score           float64  `json:"score"`
	Analysis        string   `json:"analysis"`
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	Recommendations []string `json:"recommendations"`
}

// ScoreBand is the presentation class for a match score.
type ScoreBand string

const (
	BandExcellent ScoreBand = "excellent"
	BandGood      ScoreBand = "good"
	BandNeutral   ScoreBand = ""
)

// Band classifies score. Lower bounds are inclusive: >= 80 is excellent,
// >= 60 is good, anything else is neutral.
func Band(score float64) ScoreBand {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGood
	default:
		return BandNeutral
	}
}

// Band returns the presentation class for r.Score.
func (r MatchResult) Band() ScoreBand {
	return Band(r.Score)
}
