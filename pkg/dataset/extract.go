package dataset

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"strings"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/anrid/xls"
)

// ExtractDataFromFile feeds every row of the file's first sheet to the
// handler. The format is picked by file extension: .xlsx, legacy .xls, or
// CSV for anything else.
func ExtractDataFromFile(f *File, handler func(row []string)) error {
	switch {
	case strings.HasSuffix(f.URL, ".xlsx"):
		return ExtractDataFromXLSX(f, handler)
	case strings.HasSuffix(f.URL, ".xls"):
		return ExtractDataFromXLS(f, handler)
	default:
		return ExtractDataFromCSV(f, handler)
	}
}

func ExtractDataFromXLS(f *File, handler func(row []string)) error {
	rawData, err := base64.StdEncoding.DecodeString(f.ContentBase64)
	if err != nil {
		return fmt.Errorf("decoding content of '%s': %w", f.Title, err)
	}

	wb, err := xls.OpenReader(bytes.NewReader(rawData), "utf-8")
	if err != nil {
		return fmt.Errorf("could not read XLS file '%s' (%s): %w", f.Title, f.URL, err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return fmt.Errorf("XLS file '%s' has no sheets", f.Title)
	}

	for i := 0; i < int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		var cols []string
		for j := 0; j <= row.LastCol(); j++ {
			cols = append(cols, row.Col(j))
		}
		handler(cols)
	}
	return nil
}

func ExtractDataFromXLSX(f *File, handler func(row []string)) error {
	rawData, err := base64.StdEncoding.DecodeString(f.ContentBase64)
	if err != nil {
		return fmt.Errorf("decoding content of '%s': %w", f.Title, err)
	}

	wb, err := xlsx.OpenReader(bytes.NewReader(rawData))
	if err != nil {
		return fmt.Errorf("could not read XLSX file '%s' (%s): %w", f.Title, f.URL, err)
	}

	defaultSheet := wb.GetSheetList()[0]

	rows, err := wb.GetRows(defaultSheet)
	if err != nil {
		return fmt.Errorf("could not get rows for sheet '%s': %w", defaultSheet, err)
	}

	for _, r := range rows {
		handler(r)
	}
	return nil
}

func ExtractDataFromCSV(f *File, handler func(row []string)) error {
	rawData, err := base64.StdEncoding.DecodeString(f.ContentBase64)
	if err != nil {
		return fmt.Errorf("decoding content of '%s': %w", f.Title, err)
	}

	reader := csv.NewReader(bytes.NewReader(rawData))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("could not read CSV file '%s' (%s): %w", f.Title, f.URL, err)
	}

	for _, r := range records {
		handler(r)
	}
	return nil
}
