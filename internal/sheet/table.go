// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Ketketm/linkedin-company-link-finder/pkg/types"
)

// Table is the company table: the company name in the first column and the
// result in the Linkedin_URL column. It is read once and rewritten in place
// by Save.
type Table struct {
	path   string
	format Format
	header []string
	rows   [][]string
	urlCol int

	// addedColumn is set when Linkedin_URL was missing from the header.
	addedColumn bool
	// dirty holds the data rows changed since the last Save.
	dirty map[int]bool

	// xlsx keeps the workbook open so Save only rewrites the result column
	// and leaves every other cell as it was.
	xlsx      *excelize.File
	sheetName string
}

// Open loads the company table at path. When the Linkedin_URL column is
// missing it is appended to the header with every row empty. Load failures
// are returned as *types.ConfigLoadError.
func Open(path string) (*Table, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, &types.ConfigLoadError{Path: path, Err: err}
	}

	t := &Table{path: path, format: format, dirty: map[int]bool{}}

	var rows [][]string
	if format == CSV {
		rows, err = readCSV(path)
	} else {
		t.xlsx, err = excelize.OpenFile(path)
		if err != nil {
			return nil, &types.ConfigLoadError{Path: path, Err: fmt.Errorf("opening workbook: %w", err)}
		}
		t.sheetName, rows, err = firstSheetRows(t.xlsx)
	}
	if err != nil {
		t.Close()
		return nil, &types.ConfigLoadError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		t.Close()
		return nil, &types.ConfigLoadError{Path: path, Err: errors.New("no header row")}
	}

	t.header = rows[0]
	t.rows = rows[1:]
	t.urlCol = FindColumn(t.header, types.LinkedinURLColumn, false)
	if t.urlCol < 0 {
		t.urlCol = len(t.header)
		t.header = append(t.header, types.LinkedinURLColumn)
		t.addedColumn = true
	}
	return t, nil
}

// Path returns the file the table was loaded from and is saved to.
func (t *Table) Path() string { return t.path }

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Company returns data row i as a CompanyRecord. Values are trimmed.
func (t *Table) Company(i int) types.CompanyRecord {
	row := t.rows[i]
	return types.CompanyRecord{
		Row:         i,
		Name:        cell(row, 0),
		LinkedinURL: cell(row, t.urlCol),
	}
}

// SetLinkedinURL stores v in the result column of data row i.
func (t *Table) SetLinkedinURL(i int, v string) {
	for len(t.rows[i]) <= t.urlCol {
		t.rows[i] = append(t.rows[i], "")
	}
	t.rows[i][t.urlCol] = v
	t.dirty[i] = true
}

// Save overwrites the source file with the current table.
func (t *Table) Save() error {
	var err error
	if t.format == CSV {
		err = t.saveCSV()
	} else {
		err = t.saveXLSX()
	}
	if err != nil {
		return fmt.Errorf("saving %s: %w", t.path, err)
	}
	t.dirty = map[int]bool{}
	return nil
}

func (t *Table) saveCSV() error {
	all := make([][]string, 0, len(t.rows)+1)
	all = append(all, t.header)
	for _, row := range t.rows {
		// Pad so the result column lines up with the header.
		for len(row) < len(t.header) {
			row = append(row, "")
		}
		all = append(all, row)
	}
	return replaceFile(t.path, func(w io.Writer) error { return writeCSV(w, all) })
}

func (t *Table) saveXLSX() error {
	col := t.urlCol + 1
	if t.addedColumn {
		if err := t.setCell(col, 1, types.LinkedinURLColumn); err != nil {
			return err
		}
	}
	for i := range t.dirty {
		if err := t.setCell(col, i+2, t.rows[i][t.urlCol]); err != nil {
			return err
		}
	}
	return replaceFile(t.path, func(w io.Writer) error { return t.xlsx.Write(w) })
}

func (t *Table) setCell(col, row int, v string) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := t.xlsx.SetCellStr(t.sheetName, name, v); err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	return nil
}

// Close releases the workbook, if any.
func (t *Table) Close() error {
	if t.xlsx == nil {
		return nil
	}
	return t.xlsx.Close()
}

// WriteCompanyTemplate writes an empty company table with the name and
// result headers, followed by one row per name in companies.
func WriteCompanyTemplate(path string, companies []string) error {
	rows := make([][]string, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, []string{c, ""})
	}
	return Write(path, []string{"Company", types.LinkedinURLColumn}, rows)
}
