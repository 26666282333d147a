// Package export renders inventory listings for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/skons/warehouse/internal/model"
)

// csvHeader is the column layout of an inventory export.
var csvHeader = []string{"id", "warehouse", "category", "part_name", "quantity", "last_modifier", "last_modified"}

// WriteCSV writes items as CSV to w, header first. Timestamps are
// RFC 3339 so re-imports parse unambiguously.
func WriteCSV(w io.Writer, items []model.Item) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, item := range items {
		record := []string{
			strconv.FormatInt(item.ID, 10),
			item.Warehouse,
			item.Category,
			item.PartName,
			strconv.Itoa(item.Quantity),
			item.LastModifier,
			item.LastModified.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
