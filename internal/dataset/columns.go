package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"payequity/internal/compliance"
	dErrors "payequity/pkg/domain-errors"
)

type column int

const (
	colTitle column = iota
	colPoints
	colMales
	colFemales
	colMinSalary
	colMaxSalary
	colYearsToMax
	colExceptionalService
)

var columnNames = map[string]column{
	"title":                        colTitle,
	"points":                       colPoints,
	"males":                        colMales,
	"females":                      colFemales,
	"min_salary":                   colMinSalary,
	"max_salary":                   colMaxSalary,
	"years_to_max":                 colYearsToMax,
	"exceptional_service":          colExceptionalService,
	"exceptional_service_category": colExceptionalService,
}

// required columns; the rest default to zero values.
var requiredColumns = []string{"points", "males", "females", "max_salary"}

// header maps a column to its cell index.
type header map[column]int

func parseHeader(cells []string) (header, error) {
	h := make(header, len(cells))
	for i, cell := range cells {
		name := normalizeColumnName(cell)
		if col, ok := columnNames[name]; ok {
			if _, dup := h[col]; !dup {
				h[col] = i
			}
		}
	}
	for _, name := range requiredColumns {
		if _, ok := h[columnNames[name]]; !ok {
			return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("missing required column %q", name))
		}
	}
	return h, nil
}

func normalizeColumnName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}

// jobFromCells builds a job class from one data row. row is 1-based.
func (h header) jobFromCells(row int, cells []string) (compliance.JobClass, error) {
	cell := func(c column) string {
		i, ok := h[c]
		if !ok || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}

	var (
		job compliance.JobClass
		err error
	)
	job.Title = cell(colTitle)
	job.ExceptionalServiceCategory = cell(colExceptionalService)

	if job.Points, err = parseAmount(cell(colPoints)); err != nil {
		return job, rowError(row, "points", err)
	}
	if job.Males, err = parseCount(cell(colMales)); err != nil {
		return job, rowError(row, "males", err)
	}
	if job.Females, err = parseCount(cell(colFemales)); err != nil {
		return job, rowError(row, "females", err)
	}
	if job.MinSalary, err = parseAmount(cell(colMinSalary)); err != nil {
		return job, rowError(row, "min_salary", err)
	}
	if job.MaxSalary, err = parseAmount(cell(colMaxSalary)); err != nil {
		return job, rowError(row, "max_salary", err)
	}
	if job.YearsToMax, err = parseAmount(cell(colYearsToMax)); err != nil {
		return job, rowError(row, "years_to_max", err)
	}
	return job, nil
}

// parseAmount accepts plain numbers and spreadsheet money ("$4,250.00").
// A blank cell is zero.
func parseAmount(s string) (float64, error) {
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%q is not finite", s)
	}
	return v, nil
}

func parseCount(s string) (int, error) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func rowError(row int, field string, err error) error {
	return dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("row %d: %s is not a number", row, field))
}
