package bulk

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one non-blank data row. Num is the 1-indexed position among the data
// rows of the source file (header excluded), so blank rows consume a number
// and "Row N" messages line up with what the uploader sees in their sheet.
type Row struct {
	Num   int
	Cells map[string]string
}

// ReadRows extracts the data rows of an uploaded CSV or XLSX file. Rows whose
// cells are all empty or whitespace are dropped.
func ReadRows(filename string, r io.Reader) ([]Row, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return readXLSX(r)
	}
	return readCSV(r)
}

func readCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	num := 0
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV row %d: %w", num+1, err)
		}
		num++
		if row, ok := toRow(num, header, cells); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read XLSX rows: %w", err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	header := all[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for i, cells := range all[1:] {
		if row, ok := toRow(i+1, header, cells); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func toRow(num int, header, cells []string) (Row, bool) {
	blank := true
	m := make(map[string]string, len(header))
	for i, h := range header {
		if h == "" || i >= len(cells) {
			continue
		}
		v := strings.TrimSpace(cells[i])
		m[h] = v
		if v != "" {
			blank = false
		}
	}
	if blank {
		return Row{}, false
	}
	return Row{Num: num, Cells: m}, true
}
