package service

import (
	"time"

	"github.com/mauv0809/rally-stats/internal/analytics"
	"github.com/mauv0809/rally-stats/internal/club"
)

// PlayerView is a player with its age and age group derived for the current date.
type PlayerView struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	DateOfBirth   string             `json:"dateOfBirth"`
	Gender        club.Gender        `json:"gender"`
	PreferredHand club.Hand          `json:"preferredHand"`
	Age           int                `json:"age"`
	AgeGroup      analytics.AgeGroup `json:"ageGroup"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// PlayerDetail adds the player's results, most recent first.
type PlayerDetail struct {
	PlayerView
	Results []ResultView `json:"results"`
}

// TestView is a stored test.
type TestView struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	TestType      club.TestType `json:"testType,omitempty"`
	PlayingTime   int           `json:"playingTime"`
	RecoveryTime  int           `json:"recoveryTime"`
	DateConducted string        `json:"dateConducted"`
	Description   *string       `json:"description,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// TestDetail adds the number of results recorded for the test and the results themselves.
type TestDetail struct {
	TestView
	ResultsCount int          `json:"resultsCount"`
	Results      []ResultView `json:"results"`
}

// ResultView is a result with its aggregate metrics and performance analysis.
type ResultView struct {
	ID         string `json:"id"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	TestID     string `json:"testId"`
	TestName   string `json:"testName"`
	analytics.Scores
	analytics.Summary
	PerformanceCategory string             `json:"performanceCategory"`
	Analysis            analytics.Analysis `json:"analysis"`
	CreatedAt           time.Time          `json:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt"`
}

// TestSummary is the part of a test embedded in a result detail.
type TestSummary struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	TestType      club.TestType `json:"testType,omitempty"`
	PlayingTime   int           `json:"playingTime"`
	RecoveryTime  int           `json:"recoveryTime"`
	DateConducted string        `json:"dateConducted"`
}

// ResultDetail embeds the player with derived age fields and a summary of the test.
type ResultDetail struct {
	ResultView
	Player PlayerView  `json:"player"`
	Test   TestSummary `json:"test"`
}

// CreatePlayer is the input for creating a player.
type CreatePlayer struct {
	Name          string `json:"name"`
	DateOfBirth   string `json:"dateOfBirth"`
	Gender        string `json:"gender"`
	PreferredHand string `json:"preferredHand"`
}

// UpdatePlayer is a partial update. Nil fields keep their stored value.
type UpdatePlayer struct {
	Name          *string `json:"name"`
	DateOfBirth   *string `json:"dateOfBirth"`
	Gender        *string `json:"gender"`
	PreferredHand *string `json:"preferredHand"`
}

// CreateTest is the input for creating a test. Either TestType or both durations must be given.
type CreateTest struct {
	Name          string  `json:"name"`
	TestType      string  `json:"testType"`
	PlayingTime   *int    `json:"playingTime"`
	RecoveryTime  *int    `json:"recoveryTime"`
	DateConducted string  `json:"dateConducted"`
	Description   *string `json:"description"`
}

// UpdateTest is a partial update. Nil fields keep their stored value; an empty TestType clears the preset.
type UpdateTest struct {
	Name          *string `json:"name"`
	TestType      *string `json:"testType"`
	PlayingTime   *int    `json:"playingTime"`
	RecoveryTime  *int    `json:"recoveryTime"`
	DateConducted *string `json:"dateConducted"`
	Description   *string `json:"description"`
}

// CreateResult is the input for recording a result. All four scores are required.
type CreateResult struct {
	PlayerID  string `json:"playerId"`
	TestID    string `json:"testId"`
	LeftHand  *int   `json:"leftHand"`
	RightHand *int   `json:"rightHand"`
	Forehand  *int   `json:"forehand"`
	Backhand  *int   `json:"backhand"`
}

// UpdateResult is a partial update. Nil fields keep their stored value.
type UpdateResult struct {
	PlayerID  *string `json:"playerId"`
	TestID    *string `json:"testId"`
	LeftHand  *int    `json:"leftHand"`
	RightHand *int    `json:"rightHand"`
	Forehand  *int    `json:"forehand"`
	Backhand  *int    `json:"backhand"`
}

// PlayerFilter narrows a player list. Zero values are ignored.
type PlayerFilter struct {
	Name          string
	Gender        string
	PreferredHand string
	AgeGroup      string
	MinAge        *int
	MaxAge        *int
	Sort          string
	Order         string
}

// TestFilter narrows a test list. From and To bound dateConducted, inclusive.
type TestFilter struct {
	Name           string
	TestType       string
	From           string
	To             string
	MinPlayingTime *int
	MaxPlayingTime *int
	Sort           string
	Order          string
}

// ResultFilter narrows a result list. MinScore and MaxScore bound the total score, inclusive.
type ResultFilter struct {
	PlayerID   string
	TestID     string
	PlayerName string
	MinScore   *int
	MaxScore   *int
	Category   string
	Sort       string
	Order      string
}
