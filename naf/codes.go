// Package naf loads the NAF n5 activity-code table used to drive the
// activity-code prompt. The table is the INSEE nomenclature spreadsheet
// with an extra include column marking the codes worth offering.
package naf

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Code is one NAF activity code with its label
type Code struct {
	Code  string
	Label string
}

// DefaultCodes is the fallback table used when the spreadsheet cannot be
// loaded, so the prompt always has at least one choice.
var DefaultCodes = []Code{
	{Code: "62.01Z", Label: "Programmation informatique"},
}

// LoadCodes reads the activity-code table from an xlsx file, keeping only
// rows whose include column is "o". Column positions are resolved from the
// header row.
func LoadCodes(path string) ([]Code, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open NAF table: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("NAF table has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read NAF table rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("NAF table is empty")
	}

	codeIdx, labelIdx, includeIdx := -1, -1, -1
	for idx, name := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "code":
			codeIdx = idx
		case "libellé", "libelle":
			labelIdx = idx
		case "include":
			includeIdx = idx
		}
	}
	if codeIdx == -1 || labelIdx == -1 || includeIdx == -1 {
		return nil, fmt.Errorf("NAF table is missing Code, Libellé or include columns")
	}

	var codes []Code
	for _, row := range rows[1:] {
		if safeGet(row, includeIdx) != "o" {
			continue
		}
		code := safeGet(row, codeIdx)
		if code == "" {
			continue
		}
		codes = append(codes, Code{
			Code:  code,
			Label: safeGet(row, labelIdx),
		})
	}

	if len(codes) == 0 {
		return nil, fmt.Errorf("NAF table has no included codes")
	}

	return codes, nil
}

// LoadCodesOrDefault loads the table, falling back to DefaultCodes on any
// error so the caller can always prompt for a code.
func LoadCodesOrDefault(path string, logger *slog.Logger) []Code {
	codes, err := LoadCodes(path)
	if err != nil {
		logger.Error("Failed to load NAF codes, using fallback", slog.String("error", err.Error()))
		return DefaultCodes
	}
	logger.Info("Loaded NAF codes", slog.Int("count", len(codes)))
	return codes
}

// Choices formats codes as "Label (Code)" strings for a selection prompt
func Choices(codes []Code) []string {
	choices := make([]string, 0, len(codes))
	for _, c := range codes {
		choices = append(choices, fmt.Sprintf("%s (%s)", c.Label, c.Code))
	}
	return choices
}

func safeGet(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
