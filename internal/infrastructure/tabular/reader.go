// Package tabular reads uploaded CSV and XLSX files into header-keyed
// rows for the bulk import pipeline.
package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFileType is returned for uploads that are neither CSV nor XLSX
var ErrUnsupportedFileType = fmt.Errorf("unsupported file type, upload .csv or .xlsx")

// Row is a single data row keyed by normalized header name.
// Values are raw cell contents; callers clean them per field.
type Row struct {
	Data map[string]string
}

// Get returns the raw value for a column by normalized header name
func (r Row) Get(header string) string {
	return r.Data[header]
}

// Table is the parsed content of an uploaded file
type Table struct {
	Headers []string
	Rows    []Row
}

// HasHeader checks if a normalized header is present
func (t *Table) HasHeader(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// MissingHeaders returns the required headers that are not present
func (t *Table) MissingHeaders(required []string) []string {
	var missing []string
	for _, h := range required {
		if !t.HasHeader(h) {
			missing = append(missing, h)
		}
	}
	return missing
}

// NormalizeHeader normalizes a header cell to snake_case, so
// "Season Code" and "season-code" both become "season_code"
func NormalizeHeader(h string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimRight(b.String(), "_")
}

// Read parses an uploaded file by extension. CSV and XLSX are
// supported; the first sheet of a workbook is used.
func Read(filename string, r io.Reader) (*Table, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		return readCSV(r)
	case strings.HasSuffix(name, ".xlsx"):
		return readXLSX(r)
	default:
		return nil, ErrUnsupportedFileType
	}
}

func readCSV(r io.Reader) (*Table, error) {
	bufReader := bufio.NewReader(r)

	// Strip UTF-8 BOM if present
	prefix, err := bufReader.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(prefix) >= 3 && prefix[0] == 0xEF && prefix[1] == 0xBB && prefix[2] == 0xBF {
		_, _ = bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	return buildTable(records[0], records[1:]), nil
}

func readXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}

	// First sheet only, computed cell values
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}

	return buildTable(rows[0], rows[1:]), nil
}

// buildTable normalizes headers and maps data cells onto them.
// Rows with no non-blank cell are dropped; short rows are padded
// with empty strings.
func buildTable(headerRow []string, dataRows [][]string) *Table {
	headers := make([]string, len(headerRow))
	for i, h := range headerRow {
		headers[i] = NormalizeHeader(h)
	}

	table := &Table{Headers: headers}
	for _, record := range dataRows {
		if isBlank(record) {
			continue
		}
		row := Row{Data: make(map[string]string, len(headers))}
		for i, header := range headers {
			if i < len(record) {
				row.Data[header] = record[i]
			} else {
				row.Data[header] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ReadFromBytes parses an uploaded file held in memory
func ReadFromBytes(filename string, data []byte) (*Table, error) {
	return Read(filename, bytes.NewReader(data))
}
