package compliance

const (
	// espRatioThreshold is the minimum female-to-male ESP incidence ratio.
	espRatioThreshold = 0.80
	// espMinMalePercent is the male ESP incidence, in percent, at or below
	// which the comparison is not meaningful and the test passes.
	espMinMalePercent = 20.0
)

const (
	espNoteNotOffered    = "exceptional service pay is not offered"
	espNoteFewMale       = "too few male-dominated classes receive exceptional service pay for a meaningful comparison"
	espNoteFemaleMissing = "male-dominated classes receive exceptional service pay but female-dominated classes do not"
)

// exceptionalServiceTest compares how often each gender-dominated group
// receives exceptional service pay. It passes vacuously when either group is
// empty or when no class in either group offers it.
func exceptionalServiceTest(g Groups) ExceptionalServiceTestResult {
	if !g.comparable() {
		return ExceptionalServiceTestResult{Passed: true}
	}

	r := ExceptionalServiceTestResult{
		MaleWithESP:   countWithESP(g.Male),
		FemaleWithESP: countWithESP(g.Female),
	}
	r.MalePercentage = percent(r.MaleWithESP, len(g.Male))
	r.FemalePercentage = percent(r.FemaleWithESP, len(g.Female))

	switch {
	case r.MaleWithESP == 0 && r.FemaleWithESP == 0:
		r.Passed = true
		r.Note = espNoteNotOffered
	case r.MalePercentage <= espMinMalePercent:
		r.Applicable = true
		r.Passed = true
		r.Note = espNoteFewMale
	case r.FemalePercentage == 0:
		r.Applicable = true
		r.Note = espNoteFemaleMissing
	default:
		r.Applicable = true
		r.Ratio = r.FemalePercentage / r.MalePercentage
		r.Passed = r.Ratio >= espRatioThreshold
	}
	return r
}

func countWithESP(jobs []JobClass) int {
	n := 0
	for _, j := range jobs {
		if j.HasExceptionalServicePay() {
			n++
		}
	}
	return n
}
