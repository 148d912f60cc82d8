package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"payequity/internal/compliance"
	dErrors "payequity/pkg/domain-errors"
)

// DecodeCSV reads job classes from a CSV file with a header row.
// Header names are case-insensitive; unknown columns are ignored.
func DecodeCSV(r io.Reader) ([]compliance.JobClass, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	first, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, dErrors.New(dErrors.CodeValidation, "csv dataset has no header row")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid csv")
	}
	h, err := parseHeader(first)
	if err != nil {
		return nil, err
	}

	var jobs []compliance.JobClass
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, fmt.Sprintf("row %d: invalid csv", row))
		}
		if blankRecord(record) {
			row--
			continue
		}
		job, err := h.jobFromCells(row, record)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}
