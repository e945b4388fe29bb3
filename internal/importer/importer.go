// Package importer reads stock and cut lists from CSV and Excel files, and
// parses the compact length[xqty] notation used on the command line. It
// supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/BarCut/internal/model"
)

// Row is one parsed line of a stock or cut list.
type Row struct {
	Label    string
	Length   float64
	Quantity int
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Rows     []Row
	Errors   []string
	Warnings []string
}

// ToCutPieces converts the imported rows to cut pieces.
func (r ImportResult) ToCutPieces() []model.CutPiece {
	out := make([]model.CutPiece, 0, len(r.Rows))
	for _, row := range r.Rows {
		out = append(out, model.NewCutPiece(row.Label, row.Length, row.Quantity))
	}
	return out
}

// ToStockPieces converts the imported rows to stock pieces.
func (r ImportResult) ToStockPieces() []model.StockPiece {
	out := make([]model.StockPiece, 0, len(r.Rows))
	for _, row := range r.Rows {
		out = append(out, model.NewStockPiece(row.Label, row.Length, row.Quantity))
	}
	return out
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A negative index means the column is absent.
type ColumnMapping struct {
	Label    int
	Length   int
	Quantity int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "part", "part name", "description", "desc", "piece", "item", "stock", "cut"},
	"length":   {"length", "len", "size", "l", "mm"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines the first row and returns a ColumnMapping together
// with whether the row is a header. Without a header, a row starting with a
// number maps to length,quantity and anything else to label,length,quantity.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Length: -1, Quantity: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "label":
					if mapping.Label == -1 {
						mapping.Label = i
					}
				case "length":
					if mapping.Length == -1 {
						mapping.Length = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				}
			}
		}
	}

	if isHeader {
		return mapping, true
	}

	if len(row) > 0 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64); err == nil {
			return ColumnMapping{Label: -1, Length: 0, Quantity: 1}, false
		}
	}
	return ColumnMapping{Label: 0, Length: 1, Quantity: 2}, false
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// sanitizeLength turns a length field into a usable value. Missing,
// unparsable and negative lengths become 0 with a warning.
func sanitizeLength(s, rowLabel string) (float64, string) {
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing length, using 0", rowLabel)
	}
	length, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid length '%s', using 0", rowLabel, s)
	}
	if length < 0 {
		return 0, fmt.Sprintf("%s: Negative length '%s', using 0", rowLabel, s)
	}
	return length, ""
}

// sanitizeQuantity turns a quantity field into a usable value. Missing,
// unparsable and zero quantities become 1 with a warning; a negative
// quantity is an error.
func sanitizeQuantity(s, rowLabel string) (int, string, error) {
	if s == "" {
		return 1, fmt.Sprintf("%s: Missing quantity, using 1", rowLabel), nil
	}
	qty, err := strconv.Atoi(s)
	if err != nil {
		return 1, fmt.Sprintf("%s: Invalid quantity '%s', using 1", rowLabel, s), nil
	}
	if qty < 0 {
		return 0, "", fmt.Errorf("%s: Quantity must not be negative, got %d", rowLabel, qty)
	}
	if qty == 0 {
		return 1, fmt.Sprintf("%s: Quantity 0, using 1", rowLabel), nil
	}
	return qty, "", nil
}

// parseRow extracts a Row using the given column mapping.
// Returns the row, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, count int) (Row, string, []string) {
	var warnings []string

	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Item %d", count+1)
	}

	length, warn := sanitizeLength(getCell(row, mapping.Length), rowLabel)
	if warn != "" {
		warnings = append(warnings, warn)
	}

	// Lists without a quantity column hold one piece per row.
	qty := 1
	if mapping.Quantity >= 0 {
		var err error
		qty, warn, err = sanitizeQuantity(getCell(row, mapping.Quantity), rowLabel)
		if err != nil {
			return Row{}, err.Error(), warnings
		}
		if warn != "" {
			warnings = append(warnings, warn)
		}
	}

	return Row{Label: label, Length: length, Quantity: qty}, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports rows from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports rows from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	csvReader.Comment = '#'
	return csvReader.ReadAll()
}

// ImportExcel imports rows from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches on the file extension: .xlsx and .xlsm go through
// ImportExcel, everything else through ImportCSV.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Length == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: Length")
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		parsed, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Rows))
		result.Warnings = append(result.Warnings, warnings...)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}

		result.Rows = append(result.Rows, parsed)
	}

	if len(result.Rows) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}

// ParseLengthArg parses a length[xqty] argument such as "6000x4" or "1200".
// Length and quantity are sanitized the same way as file rows; the returned
// warning is empty when nothing had to be corrected.
func ParseLengthArg(s string) (Row, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Row{}, "", fmt.Errorf("empty length argument")
	}

	lengthStr, qtyStr := s, "1"
	if i := strings.IndexAny(s, "xX*"); i >= 0 {
		lengthStr, qtyStr = strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
	}

	label := fmt.Sprintf("%q", s)
	var warnings []string
	length, warn := sanitizeLength(lengthStr, label)
	if warn != "" {
		warnings = append(warnings, warn)
	}
	qty, warn, err := sanitizeQuantity(qtyStr, label)
	if err != nil {
		return Row{}, "", err
	}
	if warn != "" {
		warnings = append(warnings, warn)
	}

	return Row{Label: s, Length: length, Quantity: qty}, strings.Join(warnings, "; "), nil
}

// ParseLengthArgs parses every argument with ParseLengthArg. Parsing stops at the
// first error.
func ParseLengthArgs(args []string) (ImportResult, error) {
	var result ImportResult
	for _, s := range args {
		row, warn, err := ParseLengthArg(s)
		if err != nil {
			return result, err
		}
		if warn != "" {
			result.Warnings = append(result.Warnings, warn)
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}
