package dataset

import (
	"io"

	"github.com/PuerkitoBio/goquery"

	"payequity/internal/compliance"
	dErrors "payequity/pkg/domain-errors"
)

// DecodeHTML reads job classes from the first table in an HTML document.
// The first row is the header and uses the same column names as CSV.
func DecodeHTML(r io.Reader) ([]compliance.JobClass, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to parse html")
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "html dataset has no table")
	}

	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, cell.Text())
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	if len(rows) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "html dataset has no header row")
	}

	h, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	jobs := make([]compliance.JobClass, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		job, err := h.jobFromCells(i+1, cells)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
