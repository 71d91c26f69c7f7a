package widget

import (
	"fmt"
	"strings"
)

const (
	Heading          = "Portfolio (Alpaca)"
	ChartPlaceholder = "[Chart placeholder]"
	NoData           = "No data"
	EquityUnknown    = "unavailable"
)

// Layout is the rendered view split into its parts. Empty strings are
// parts that are not shown.
type Layout struct {
	Heading    string
	EquityLine string
	ChartArea  string
	ErrorLine  string
}

func NewLayout(state ViewState) Layout {
	out := Layout{
		Heading: Heading,
	}

	if state.Phase == Failed {
		msg := "unknown error"
		if state.Err != nil {
			msg = state.Err.Error()
		}
		out.ErrorLine = fmt.Sprintf("Error: %s", msg)
		return out
	}

	if state.Metrics != nil {
		equity := EquityUnknown
		if state.Metrics.Equity != nil {
			equity = "$" + state.Metrics.Equity.String()
		}
		out.EquityLine = fmt.Sprintf("Equity: %s", equity)
	}

	if len(state.EquityPoints) > 0 {
		out.ChartArea = ChartPlaceholder
	} else {
		out.ChartArea = NoData
	}

	return out
}

func (l Layout) Lines() []string {
	lines := []string{}
	for _, s := range []string{l.Heading, l.EquityLine, l.ChartArea, l.ErrorLine} {
		if s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

// Render is a pure function of state.
func Render(state ViewState) string {
	return strings.Join(NewLayout(state).Lines(), "\n") + "\n"
}
