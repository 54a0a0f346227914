package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"receipts/internal/core"
)

// ErrBadRow marks a row that is not date,type,amount[,quantity].
var ErrBadRow = errors.New("expected date,type,amount[,quantity]")

type row struct {
	line   int
	fields []string
}

// ReadEntries parses CSV rows of date,type,amount[,quantity] into entries.
// A leading header row starting with "date" is skipped, as are blank lines
// and lines starting with '#'. Every bad row is reported with its line
// number; no entries are returned unless all rows are valid.
func ReadEntries(r io.Reader, ids core.IDGenerator) ([]core.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var rows []row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, row{line: line, fields: rec})
	}
	return entriesFromRows(rows, ids)
}

// ReadXLSX reads the same columns from the first sheet of a workbook. Dates
// must be text cells in YYYY-MM-DD form.
func ReadXLSX(r io.Reader, ids core.IDGenerator) ([]core.Entry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var rows []row
	for i, rec := range cells {
		if blank(rec) || strings.HasPrefix(strings.TrimSpace(rec[0]), "#") {
			continue
		}
		rows = append(rows, row{line: i + 1, fields: rec})
	}
	return entriesFromRows(rows, ids)
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func entriesFromRows(rows []row, ids core.IDGenerator) ([]core.Entry, error) {
	if len(rows) > 0 && strings.EqualFold(strings.TrimSpace(rows[0].fields[0]), "date") {
		rows = rows[1:]
	}

	var (
		entries []core.Entry
		errs    []error
	)
	for _, r := range rows {
		req, err := parseRow(r.fields)
		if err == nil {
			var batch []core.Entry
			batch, err = req.Entries(ids)
			entries = append(entries, batch...)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", r.line, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if _, err := core.CheckedSum(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func parseRow(rec []string) (core.AddRequest, error) {
	for len(rec) > 3 && strings.TrimSpace(rec[len(rec)-1]) == "" {
		rec = rec[:len(rec)-1]
	}
	if len(rec) < 3 || len(rec) > 4 {
		return core.AddRequest{}, fmt.Errorf("%w: got %d fields", ErrBadRow, len(rec))
	}
	req := core.AddRequest{
		Date:     strings.TrimSpace(rec[0]),
		Type:     strings.TrimSpace(rec[1]),
		Amount:   strings.TrimSpace(rec[2]),
		Quantity: 1,
	}
	if len(rec) == 4 {
		q, err := strconv.Atoi(strings.TrimSpace(rec[3]))
		if err != nil {
			q = 0
		}
		req.Quantity = q
	}
	return req, nil
}
