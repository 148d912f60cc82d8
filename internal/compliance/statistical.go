package compliance

import "math"

// underpaymentRatioThreshold is the minimum passing underpayment ratio, in percent.
const underpaymentRatioThreshold = 80.0

// statisticalTest compares how far each gender-dominated group sits from the
// jurisdiction-wide pay line. Groups that cannot be compared yield a zero result.
func statisticalTest(g Groups, line PayLine) StatisticalTestResult {
	if !g.comparable() {
		return StatisticalTestResult{}
	}

	maleDiffs := payDifferences(g.Male, line)
	femaleDiffs := payDifferences(g.Female, line)

	r := StatisticalTestResult{
		Applicable:           true,
		MaleBelowPredicted:   countNegative(maleDiffs),
		FemaleBelowPredicted: countNegative(femaleDiffs),
	}
	r.MalePercentBelow = percent(r.MaleBelowPredicted, len(maleDiffs))
	r.FemalePercentBelow = percent(r.FemaleBelowPredicted, len(femaleDiffs))
	if r.FemalePercentBelow != 0 {
		r.UnderpaymentRatio = 100 * r.MalePercentBelow / r.FemalePercentBelow
	}
	r.UnderpaymentRatioPassed = r.UnderpaymentRatio >= underpaymentRatioThreshold

	maleMean, maleVar := meanAndVariance(maleDiffs)
	femaleMean, femaleVar := meanAndVariance(femaleDiffs)
	r.MaleMeanDifference = maleMean
	r.FemaleMeanDifference = femaleMean

	se := math.Sqrt(maleVar/float64(len(maleDiffs)) + femaleVar/float64(len(femaleDiffs)))
	if se != 0 {
		r.TValue = (maleMean - femaleMean) / se
	}
	r.DegreesOfFreedom = len(maleDiffs) + len(femaleDiffs) - 2
	r.CriticalValue = CriticalT(r.DegreesOfFreedom)
	r.TTestPassed = math.Abs(r.TValue) <= r.CriticalValue
	return r
}

// payDifferences returns actual minus predicted maximum salary per class.
func payDifferences(jobs []JobClass, line PayLine) []float64 {
	diffs := make([]float64, len(jobs))
	for i, j := range jobs {
		diffs[i] = j.MaxSalary - line.Predict(j.Points)
	}
	return diffs
}

func countNegative(xs []float64) int {
	n := 0
	for _, x := range xs {
		if x < 0 {
			n++
		}
	}
	return n
}

// meanAndVariance returns the mean and the sample variance (n-1 denominator).
// Fewer than two values have zero variance.
func meanAndVariance(xs []float64) (mean, variance float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	if len(xs) < 2 {
		return mean, 0
	}
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	return mean, variance / float64(len(xs)-1)
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}
