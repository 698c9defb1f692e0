package core

import (
	"errors"
	"math"
)

// Savings projection assumptions: a nominal annual return, compounded
// monthly, over fixed five-year checkpoints.
const (
	projectionAnnualRate = 0.07
	projectionStepYears  = 5
	projectionMaxYears   = 40
)

// ErrInvalidIncome signals the one precondition the pipeline enforces:
// the projection needs a positive, finite monthly income. Bad data
// values degrade silently everywhere else; a missing required parameter
// does not.
var ErrInvalidIncome = errors.New("monthly income must be a positive number")

// ProjectionPoint is the estimated future value of the savings stream
// after the given number of years.
type ProjectionPoint struct {
	Years       int     `json:"years"`
	FutureValue float64 `json:"futureValue"`
}

// ProjectSavings future-values the monthly savings stream
// (income minus average monthly spend) at 5, 10, ... 40 years.
// A negative savings stream is allowed and produces a negative
// projection: someone who overspends should see the hole grow, not an
// error. Values are rounded to two decimals.
func ProjectSavings(monthlyIncome, averageMonthlySpend float64) ([]ProjectionPoint, error) {
	if monthlyIncome <= 0 || math.IsNaN(monthlyIncome) || math.IsInf(monthlyIncome, 0) {
		return nil, ErrInvalidIncome
	}

	monthlySavings := monthlyIncome - averageMonthlySpend
	monthlyRate := projectionAnnualRate / 12

	points := make([]ProjectionPoint, 0, projectionMaxYears/projectionStepYears)
	for years := projectionStepYears; years <= projectionMaxYears; years += projectionStepYears {
		months := float64(years * 12)
		// Future value of an ordinary annuity.
		fv := monthlySavings * (math.Pow(1+monthlyRate, months) - 1) / monthlyRate
		points = append(points, ProjectionPoint{
			Years:       years,
			FutureValue: round2(fv),
		})
	}
	return points, nil
}
