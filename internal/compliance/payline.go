package compliance

// PayLine is the least-squares line of maximum salary on job evaluation
// points, fitted over every class of a jurisdiction.
type PayLine struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`

	// Defined is false when fewer than two classes were supplied.
	Defined bool `json:"defined"`

	// Degenerate is set when every class shares the same points value; the
	// line is then flat at the mean maximum salary.
	Degenerate bool `json:"degenerate,omitempty"`
}

// FitPayLine fits max salary against points by ordinary least squares.
func FitPayLine(jobs []JobClass) PayLine {
	n := float64(len(jobs))
	if len(jobs) < 2 {
		return PayLine{}
	}

	var sumX, sumY, sumXY, sumXX float64
	for _, j := range jobs {
		sumX += j.Points
		sumY += j.MaxSalary
		sumXY += j.Points * j.MaxSalary
		sumXX += j.Points * j.Points
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 || samePoints(jobs) {
		return PayLine{Intercept: sumY / n, Defined: true, Degenerate: true}
	}
	slope := (n*sumXY - sumX*sumY) / denom
	return PayLine{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / n,
		Defined:   true,
	}
}

// Predict returns the predicted maximum salary for points, or 0 when the
// line is undefined.
func (p PayLine) Predict(points float64) float64 {
	if !p.Defined {
		return 0
	}
	return p.Slope*points + p.Intercept
}

// samePoints reports whether every class shares one points value. The OLS
// denominator does not round to exactly zero for fractional points.
func samePoints(jobs []JobClass) bool {
	for _, j := range jobs[1:] {
		if j.Points != jobs[0].Points {
			return false
		}
	}
	return true
}
