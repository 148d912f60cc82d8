// Package compliance implements the pay equity compliance analysis: it
// classifies job classes by gender dominance, fits a jurisdiction-wide pay
// line, runs the statistical, salary range and exceptional service pay tests,
// and composes a verdict.
//
// Analysis is a pure function of its input. It performs no I/O, keeps no
// state between calls and never modifies the supplied job classes.
package compliance

import (
	"fmt"
	"strings"
)

// manualReviewMaxMaleClasses is the largest male-dominated group size that
// still requires manual review instead of a computed verdict.
const manualReviewMaxMaleClasses = 3

const (
	msgNoData       = "No job classes were supplied; compliance cannot be evaluated."
	msgManualReview = "The jurisdiction has %d male-dominated %s; at least %d are needed for the tests to be conclusive, so the report requires manual review."
	msgCompliant    = "The jurisdiction is in compliance: the salary range and exceptional service pay tests passed."
	msgNotCompliant = "The jurisdiction is not in compliance: the %s failed."
)

// Analyze evaluates jobs and returns a compliance verdict.
//
// All three sub-tests are computed even when the verdict requires manual
// review so callers always have the full diagnostic picture. Only the salary
// range and exceptional service pay tests decide compliance; the statistical
// test is reported but does not gate it.
func Analyze(jobs []JobClass) Verdict {
	if len(jobs) == 0 {
		return Verdict{State: StateEmpty, Message: msgNoData}
	}

	groups := Partition(jobs)
	line := FitPayLine(jobs)

	v := Verdict{
		GeneralInfo:            summarizeGeneralInfo(jobs, groups),
		PayLine:                line,
		StatisticalTest:        Some(statisticalTest(groups, line)),
		SalaryRangeTest:        Some(salaryRangeTest(groups)),
		ExceptionalServiceTest: Some(exceptionalServiceTest(groups)),
	}

	if len(groups.Male) <= manualReviewMaxMaleClasses {
		v.State = StateManualReview
		v.RequiresManualReview = true
		v.Message = fmt.Sprintf(msgManualReview,
			len(groups.Male), plural(len(groups.Male), "class", "classes"), manualReviewMaxMaleClasses+1)
		return v
	}

	salary := v.SalaryRangeTest.OrZero()
	esp := v.ExceptionalServiceTest.OrZero()
	v.State = StateEvaluated
	v.IsCompliant = salary.Passed && esp.Passed
	v.Message = complianceMessage(salary, esp)
	return v
}

func complianceMessage(salary SalaryRangeTestResult, esp ExceptionalServiceTestResult) string {
	var failed []string
	if !salary.Passed {
		failed = append(failed, "salary range test")
	}
	if !esp.Passed {
		failed = append(failed, "exceptional service pay test")
	}
	if len(failed) == 0 {
		return msgCompliant
	}
	return fmt.Sprintf(msgNotCompliant, strings.Join(failed, " and "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
