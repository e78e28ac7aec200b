// Package catalog loads the immutable strategy table the scorer runs against.
// The service cannot operate without it, so any load problem is fatal at
// startup.
package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"InvestGuide/internal/domain/models"
)

var requiredColumns = []string{
	"Strategy_Name",
	"Goals",
	"Risk_Tolerance",
	"Horizon",
	"Knowledge_Level",
	"Description",
}

var validRisk = map[string]bool{"low": true, "medium": true, "high": true}

var validKnowledge = map[string]bool{"beginner": true, "intermediate": true, "advanced": true}

// Load reads the catalog CSV at path into a slice of validated records.
func Load(path string) ([]models.StrategyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("catalog missing required column %q", name)
		}
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog %s has no data rows", path)
	}

	records := make([]models.StrategyRecord, 0, len(rows))
	for i, row := range rows {
		rec := models.StrategyRecord{
			Name:           field(row, cols["Strategy_Name"]),
			Goals:          field(row, cols["Goals"]),
			RiskTolerance:  field(row, cols["Risk_Tolerance"]),
			Horizon:        field(row, cols["Horizon"]),
			KnowledgeLevel: field(row, cols["Knowledge_Level"]),
			Description:    field(row, cols["Description"]),
		}
		if err := validate(rec); err != nil {
			return nil, fmt.Errorf("catalog row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func field(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func validate(rec models.StrategyRecord) error {
	if rec.Name == "" {
		return fmt.Errorf("empty Strategy_Name")
	}
	if rec.Goals == "" {
		return fmt.Errorf("strategy %q: empty Goals", rec.Name)
	}
	if rec.Horizon == "" {
		return fmt.Errorf("strategy %q: empty Horizon", rec.Name)
	}
	if !validRisk[strings.ToLower(rec.RiskTolerance)] {
		return fmt.Errorf("strategy %q: invalid Risk_Tolerance %q", rec.Name, rec.RiskTolerance)
	}
	if !validKnowledge[strings.ToLower(rec.KnowledgeLevel)] {
		return fmt.Errorf("strategy %q: invalid Knowledge_Level %q", rec.Name, rec.KnowledgeLevel)
	}
	return nil
}
