package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payequity/internal/compliance"
)

func sampleJobs() []compliance.JobClass {
	var jobs []compliance.JobClass
	for i := 0; i < 4; i++ {
		p := float64(150 + 50*i)
		jobs = append(jobs,
			compliance.JobClass{Points: p, Males: 8, MaxSalary: 5200},
			compliance.JobClass{Points: p, Females: 8, MaxSalary: 4700},
		)
	}
	return jobs
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$4,000.00", Money(4000))
	assert.Equal(t, "$1,234,567.89", Money(1234567.89))
	assert.Equal(t, "$0.00", Money(0))
}

func TestText(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	t.Run("evaluated verdict lists every test", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Text(&buf, "Lakeview County", compliance.Analyze(sampleJobs())))

		out := buf.String()
		assert.Contains(t, out, "Lakeview County")
		assert.Contains(t, out, "IN COMPLIANCE")
		assert.Contains(t, out, "Male-dominated")
		assert.Contains(t, out, "$5,200.00")
		assert.Contains(t, out, "Salary range")
		assert.Contains(t, out, "Exceptional service pay")
		assert.Contains(t, out, "T-test")
	})

	t.Run("empty verdict prints only the message", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Text(&buf, "", compliance.Analyze(nil)))
		assert.Contains(t, buf.String(), "NO DATA")
		assert.NotContains(t, buf.String(), "Salary range")
	})
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, compliance.Analyze(sampleJobs())))

	var got compliance.Verdict
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.True(t, got.IsCompliant)
	assert.Equal(t, compliance.StateEvaluated, got.State)
}
