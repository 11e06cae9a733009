package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/BishwajeetPatel/task-glitch/internal/models"
)

var header = []string{"id", "title", "revenue", "timeTaken", "status", "priority", "roi"}

// WriteCSV serializes a derived view. The roi column is left empty for
// tasks whose ROI is not computable.
func WriteCSV(w io.Writer, tasks []models.DerivedTask) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("Error trying to write CSV header: %w", err)
	}

	for _, t := range tasks {
		roi := ""
		if t.ROI != nil {
			roi = strconv.FormatFloat(*t.ROI, 'f', -1, 64)
		}
		record := []string{
			t.ID,
			t.Title,
			strconv.FormatFloat(t.Revenue, 'f', -1, 64),
			strconv.FormatFloat(t.TimeTaken, 'f', -1, 64),
			string(t.Status),
			string(t.Priority),
			roi,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("Error trying to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
