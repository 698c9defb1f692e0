// Package advice turns a monthly spending summary into natural-language
// budgeting suggestions via an LLM API. The aggregation core never
// imports this package; handlers hand it a finished summary and get
// strings back.
package advice

import (
	"context"

	"insight/internal/core"
)

// Summary is the numeric input the model reasons about: the user's
// monthly income and one month of per-bucket spend.
type Summary struct {
	Income     float64                   `json:"income"`
	Categories map[core.Category]float64 `json:"categories"`
}

// Advice is one suggestion with the model's estimate of the monthly
// amount it could free up.
type Advice struct {
	Advice   string `json:"advice"`
	Estimate int    `json:"estimate"`
}

// Advisor is the narrow seam between the HTTP layer and whatever
// produces advice, so handlers stay testable without network access.
type Advisor interface {
	Suggest(ctx context.Context, summary Summary) ([]Advice, error)
}
