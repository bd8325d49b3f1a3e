package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/XSaadiX/Quiz-app/internal/question"
)

// OptionSeparator splits the options cell of a spreadsheet row.
const OptionSeparator = "|"

// Spreadsheet columns, in order. The first row is a header and is skipped.
var xlsxHeader = []string{"id", "type", "text", "options", "correctAnswer", "category"}

// LoadXLSX reads a catalog from sheet of the workbook at path. An empty
// sheet name selects the first sheet. Rows with an empty id cell are
// skipped; every other malformed row is reported.
func LoadXLSX(path, sheet string) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	c := &Catalog{Title: sheet}
	var errs []string
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		s, err := specFromRow(row)
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		c.Questions = append(c.Questions, s)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s:\n  %s", ErrInvalidCatalog, path, strings.Join(errs, "\n  "))
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func specFromRow(row []string) (question.Spec, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	id, err := strconv.Atoi(cell(0))
	if err != nil {
		return question.Spec{}, fmt.Errorf("id %q is not a number", cell(0))
	}

	s := question.Spec{
		ID:            id,
		Type:          question.Kind(cell(1)),
		Text:          cell(2),
		CorrectAnswer: cell(4),
		Category:      cell(5),
	}
	if raw := cell(3); raw != "" {
		for _, o := range strings.Split(raw, OptionSeparator) {
			s.Options = append(s.Options, strings.TrimSpace(o))
		}
	}
	return s, nil
}

// WriteXLSX writes c to a new workbook at path in the layout LoadXLSX reads.
func WriteXLSX(c *Catalog, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]any, len(xlsxHeader))
	for i, h := range xlsxHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, s := range c.Questions {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{s.ID, string(s.Type), s.Text, strings.Join(s.Options, OptionSeparator), s.CorrectAnswer, s.Category}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
