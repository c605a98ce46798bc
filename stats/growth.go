package stats

import (
	"fmt"

	"github.com/bitmark-inc/covid-tracker/schema"
)

var (
	ErrInsufficientData = fmt.Errorf("insufficient data")
	ErrUndefinedGrowth  = fmt.Errorf("undefined growth rate")
)

// Rate is a percentage change. It is not defined when the previous value is zero.
type Rate struct {
	Percent float64 `json:"percent"`
	Defined bool    `json:"defined"`
}

func (r Rate) String() string {
	if !r.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%.2f%%", r.Percent)
}

// Growth holds the change rates of the two latest rolling averages.
type Growth struct {
	Cases  Rate `json:"cases"`
	Deaths Rate `json:"deaths"`
}

// ChangeRate returns the percentage change from previous to latest. Only a
// zero previous value is undefined, a drop to zero is -100%.
func ChangeRate(latest, previous float64) (float64, error) {
	if previous == 0 {
		return 0, ErrUndefinedGrowth
	}

	return (latest - previous) / previous * 100, nil
}

// GrowthRate compares the rolling averages of the last two points of s.
func GrowthRate(s schema.Series) (Growth, error) {
	if len(s) < 2 {
		return Growth{}, ErrInsufficientData
	}

	latest, previous := s[len(s)-1], s[len(s)-2]
	if latest.RollingCases == nil || previous.RollingCases == nil ||
		latest.RollingDeaths == nil || previous.RollingDeaths == nil {
		return Growth{}, ErrInsufficientData
	}

	return Growth{
		Cases:  rate(*latest.RollingCases, *previous.RollingCases),
		Deaths: rate(*latest.RollingDeaths, *previous.RollingDeaths),
	}, nil
}

func rate(latest, previous int) Rate {
	percent, err := ChangeRate(float64(latest), float64(previous))
	if nil != err {
		return Rate{}
	}
	return Rate{Percent: percent, Defined: true}
}
