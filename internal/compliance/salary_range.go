package compliance

// salaryRangeThreshold is the minimum female-to-male average pay ratio.
const salaryRangeThreshold = 0.80

// salaryRangeTest compares average maximum monthly salary between the
// gender-dominated groups. It passes vacuously when either group is empty.
func salaryRangeTest(g Groups) SalaryRangeTestResult {
	if !g.comparable() {
		return SalaryRangeTestResult{Passed: true}
	}

	r := SalaryRangeTestResult{
		Applicable:    true,
		MaleAverage:   averageMaxSalary(g.Male),
		FemaleAverage: averageMaxSalary(g.Female),
	}
	if r.MaleAverage != 0 {
		r.Ratio = r.FemaleAverage / r.MaleAverage
	}
	r.Passed = r.Ratio >= salaryRangeThreshold
	return r
}
