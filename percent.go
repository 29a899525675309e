package attribution

import "fmt"

// Percent is a fractional value rendered as a percentage: 0.05 prints as
// "5.00%".
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.000001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", 100*p)
}

// SignedString renders with an explicit sign, and a flat "-" for exact zero
// so that zero-weight cells read as blanks in tables.
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", 100*p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
