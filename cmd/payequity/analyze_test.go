package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payequity/internal/batch"
	"payequity/internal/compliance"
	"payequity/internal/dataset"
)

func result(path string, jobs []compliance.JobClass) batch.Result {
	v := compliance.Analyze(jobs)
	return batch.Result{
		Path:    path,
		Dataset: &dataset.Dataset{Name: "county", Jurisdiction: "Example County", Jobs: jobs},
		Verdict: &v,
	}
}

func TestWriteResults(t *testing.T) {
	manualReview := []compliance.JobClass{
		{Points: 300, Males: 5, MaxSalary: 6000},
		{Points: 100, Females: 5, MaxSalary: 3000},
	}

	t.Run("json output keeps order and reports errors inline", func(t *testing.T) {
		var out bytes.Buffer
		results := []batch.Result{
			result("a.csv", manualReview),
			{Path: "b.csv", Err: errors.New("row 2: points is not a number")},
		}

		err := writeResults(&out, results, "json", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 datasets")

		var got []jsonResult
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "a.csv", got[0].File)
		assert.Equal(t, compliance.OutcomeManualReview, got[0].Outcome)
		assert.Equal(t, "b.csv", got[1].File)
		assert.Equal(t, "row 2: points is not a number", got[1].Error)
		assert.Nil(t, got[1].Verdict)
	})

	t.Run("strict fails on non-compliant datasets", func(t *testing.T) {
		var out bytes.Buffer
		err := writeResults(&out, []batch.Result{result("a.csv", manualReview)}, "table", true)
		assert.ErrorIs(t, err, errNotCompliant)
		assert.Contains(t, out.String(), "Example County (a.csv)")
	})

	t.Run("table output without strict succeeds", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeResults(&out, []batch.Result{result("a.csv", nil)}, "table", false))
		assert.Contains(t, out.String(), "NO DATA")
	})
}
