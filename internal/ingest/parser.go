package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/stockpilot/wms-backend/pkg/errors"
)

// Row is one data row of a sales export, keyed by normalized header.
type Row struct {
	// Index is the 1-based data row number, excluding the header row.
	Index  int
	values map[string]string
}

// Get returns the trimmed cell value for the given header, matching
// case-insensitively. Missing columns return "".
func (r Row) Get(header string) string {
	return r.values[normalizeHeader(header)]
}

// File is a parsed sales export.
type File struct {
	Name    string
	Headers []string
	Rows    []Row
}

// ParseFile reads a CSV or XLSX sales export into memory. Anything the
// parser cannot read is a structural error: the whole file is rejected.
func ParseFile(name string, r io.Reader) (*File, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return parseCSV(name, r)
	case ".xlsx":
		return parseXLSX(name, r)
	default:
		return nil, apperrors.New(apperrors.CodeFileRejected,
			fmt.Sprintf("unsupported file type %q", filepath.Ext(name)))
	}
}

func parseCSV(name string, r io.Reader) (*File, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileRejected, err, "unreadable csv file")
	}
	return buildFile(name, records), nil
}

func parseXLSX(name string, r io.Reader) (*File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileRejected, err, "unreadable xlsx file")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.New(apperrors.CodeFileRejected, "xlsx file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileRejected, err, "reading xlsx rows")
	}
	return buildFile(name, rows), nil
}

func buildFile(name string, records [][]string) *File {
	file := &File{Name: name}
	if len(records) == 0 {
		return file
	}

	for _, h := range records[0] {
		file.Headers = append(file.Headers, strings.TrimSpace(h))
	}

	keys := make([]string, len(file.Headers))
	for i, h := range file.Headers {
		keys[i] = normalizeHeader(h)
	}

	for i, record := range records[1:] {
		row := Row{Index: i + 1, values: make(map[string]string, len(keys))}
		empty := true
		for col, key := range keys {
			if key == "" || col >= len(record) {
				continue
			}
			val := strings.TrimSpace(record[col])
			if val != "" {
				empty = false
			}
			row.values[key] = val
		}
		if empty {
			continue
		}
		file.Rows = append(file.Rows, row)
	}
	return file
}

func normalizeHeader(h string) string {
	return strings.ToUpper(strings.TrimSpace(h))
}
