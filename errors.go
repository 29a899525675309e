package attribution

import (
	"errors"
	"fmt"

	"github.com/etnz/attribution/date"
)

// ErrInvalidInput marks malformed snapshot or NAV data (unparseable date,
// non-numeric weight). It is surfaced at ingestion, before any price
// resolution is attempted.
var ErrInvalidInput = errors.New("invalid input")

// invalidInput wraps a formatted message with ErrInvalidInput.
func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// PriceUnavailableError reports that no price could be found for a ticker
// anywhere in the resolution window ending on the requested date. It is
// fatal to the whole analysis: a missing price breaks return computation
// for every period referencing it.
type PriceUnavailableError struct {
	Ticker string
	On     date.Date
}

func (e *PriceUnavailableError) Error() string {
	return fmt.Sprintf("no price available for %s on %s", e.Ticker, e.On)
}
