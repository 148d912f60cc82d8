// Package render formats compliance verdicts for terminals and machines.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"payequity/internal/compliance"
)

// Money formats a monthly amount as dollars with cents.
func Money(amount float64) string {
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

// Percent formats a percentage with one decimal.
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// PassFail colorizes a test outcome.
func PassFail(passed bool) string {
	if passed {
		return pterm.Green("PASS")
	}
	return pterm.Red("FAIL")
}

// JSON writes v (a verdict or a batch of them) as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Text writes a human-readable compliance report for one dataset.
func Text(w io.Writer, name string, v compliance.Verdict) error {
	var b strings.Builder
	if name != "" {
		b.WriteString(pterm.Bold.Sprint(name))
		b.WriteString("\n")
	}
	b.WriteString(headline(v))
	b.WriteString("\n")
	b.WriteString(v.Message)
	b.WriteString("\n\n")

	if v.State == compliance.StateEmpty {
		_, err := io.WriteString(w, b.String())
		return err
	}

	general, err := generalInfoTable(v.GeneralInfo)
	if err != nil {
		return fmt.Errorf("render general info: %w", err)
	}
	b.WriteString(general)
	b.WriteString("\n")

	tests, err := testsTable(v)
	if err != nil {
		return fmt.Errorf("render tests: %w", err)
	}
	b.WriteString(tests)
	b.WriteString("\n")

	_, err = io.WriteString(w, b.String())
	return err
}

func headline(v compliance.Verdict) string {
	switch {
	case v.State == compliance.StateEmpty:
		return pterm.Gray("NO DATA")
	case v.RequiresManualReview:
		return pterm.Yellow("MANUAL REVIEW REQUIRED")
	case v.IsCompliant:
		return pterm.Green("IN COMPLIANCE")
	default:
		return pterm.Red("NOT IN COMPLIANCE")
	}
}

func generalInfoTable(info compliance.GeneralInfo) (string, error) {
	row := func(label string, s compliance.GroupSummary) []string {
		return []string{label, humanize.Comma(int64(s.Classes)), humanize.Comma(int64(s.Employees)), Money(s.AverageMaxSalary)}
	}
	data := pterm.TableData{
		{"Group", "Classes", "Employees", "Avg Max Salary"},
		row("Male-dominated", info.MaleDominated),
		row("Female-dominated", info.FemaleDominated),
		row("Balanced", info.Balanced),
		row("All job classes", info.All),
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func testsTable(v compliance.Verdict) (string, error) {
	data := pterm.TableData{{"Test", "Result", "Detail"}}

	if stat, ok := v.StatisticalTest.Get(); ok {
		if stat.Applicable {
			data = append(data,
				[]string{"Underpayment ratio", PassFail(stat.UnderpaymentRatioPassed), Percent(stat.UnderpaymentRatio)},
				[]string{"T-test", PassFail(stat.TTestPassed), fmt.Sprintf("t=%.3f df=%d critical=%.3f", stat.TValue, stat.DegreesOfFreedom, stat.CriticalValue)},
			)
		} else {
			data = append(data, []string{"Statistical analysis", "N/A", "needs male- and female-dominated classes"})
		}
	}

	if salary, ok := v.SalaryRangeTest.Get(); ok {
		detail := "needs male- and female-dominated classes"
		if salary.Applicable {
			detail = fmt.Sprintf("female %s / male %s = %s",
				Money(salary.FemaleAverage), Money(salary.MaleAverage), Percent(100*salary.Ratio))
		}
		data = append(data, []string{"Salary range", PassFail(salary.Passed), detail})
	}

	if esp, ok := v.ExceptionalServiceTest.Get(); ok {
		var detail string
		switch {
		case esp.Note != "":
			detail = esp.Note
		case esp.Applicable:
			detail = fmt.Sprintf("female %s / male %s", Percent(esp.FemalePercentage), Percent(esp.MalePercentage))
		default:
			detail = "needs male- and female-dominated classes"
		}
		data = append(data, []string{"Exceptional service pay", PassFail(esp.Passed), detail})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}
