package export

import (
	"fmt"
	"io"
	"portfoliowidget/internal/domain"

	"github.com/gocarina/gocsv"
)

type equityRow struct {
	Date  string `csv:"date"`
	Value string `csv:"value"`
}

// WriteEquityCSV writes points as date,value rows in the order given.
func WriteEquityCSV(w io.Writer, points []domain.HistoryPoint) error {
	rows := make([]equityRow, 0, len(points))
	for _, p := range points {
		rows = append(rows, equityRow{
			Date:  p.Date,
			Value: p.Value.String(),
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write equity csv: %w", err)
	}
	return nil
}
