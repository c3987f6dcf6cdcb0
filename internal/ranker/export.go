package ranker

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var csvHeader = []string{"rank", "name", "email", "phone", "file", "score", "skills"}

// WriteCSV writes results with a header row. Skills are joined with "; ".
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, res := range results {
		record := []string{
			strconv.Itoa(res.Rank),
			res.Name,
			res.Email,
			res.Phone,
			res.File,
			strconv.FormatFloat(res.Score, 'f', 3, 64),
			strings.Join(res.Skills, "; "),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
