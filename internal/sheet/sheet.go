// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet reads and writes the tabular files lk-finder works on.
// Excel workbooks (.xlsx, first sheet only) and CSV files are supported;
// the format is chosen by file extension.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format identifies a supported file format.
type Format int

const (
	XLSX Format = iota
	CSV
)

func (f Format) String() string {
	if f == CSV {
		return "csv"
	}
	return "xlsx"
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return XLSX, nil
	case ".csv":
		return CSV, nil
	default:
		return 0, fmt.Errorf("unsupported file extension %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

// ReadRows returns every row of the file, header included. Rows may have
// different lengths.
func ReadRows(path string) ([][]string, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if format == CSV {
		return readCSV(path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	_, rows, err := firstSheetRows(f)
	return rows, err
}

// Write creates path (overwriting it) with header followed by rows.
func Write(path string, header []string, rows [][]string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	all := append([][]string{header}, rows...)
	if format == CSV {
		return replaceFile(path, func(w io.Writer) error { return writeCSV(w, all) })
	}

	f := excelize.NewFile()
	defer f.Close()
	sheetName := f.GetSheetName(0)
	for r, row := range all {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellStr(sheetName, cell, v); err != nil {
				return fmt.Errorf("setting %s: %w", cell, err)
			}
		}
	}
	return replaceFile(path, func(w io.Writer) error { return f.Write(w) })
}

func firstSheetRows(f *excelize.File) (string, [][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return sheets[0], rows, nil
}

func readCSV(path string) ([][]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer fh.Close()

	r := csv.NewReader(fh)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	// Spreadsheet exports often start with a UTF-8 byte order mark.
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// replaceFile writes to a temporary file in the target directory and renames
// it over path, so a failed write never leaves a truncated file behind.
func replaceFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".lk-finder-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// cell returns row[i] trimmed, or "" when the row is too short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// FindColumn returns the index of the first header equal to name after
// trimming, ignoring case when fold is set. It returns -1 when absent.
func FindColumn(header []string, name string, fold bool) int {
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == name || (fold && strings.EqualFold(h, name)) {
			return i
		}
	}
	return -1
}
