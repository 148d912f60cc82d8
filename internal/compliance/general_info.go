package compliance

// summarizeGeneralInfo computes counts, headcounts and average maximum pay
// for each group and for the full input list.
func summarizeGeneralInfo(jobs []JobClass, g Groups) GeneralInfo {
	return GeneralInfo{
		MaleDominated:   summarize(g.Male, func(j JobClass) int { return j.Males }),
		FemaleDominated: summarize(g.Female, func(j JobClass) int { return j.Females }),
		Balanced:        summarize(g.Balanced, JobClass.Employees),
		All:             summarize(jobs, JobClass.Employees),
	}
}

func summarize(jobs []JobClass, headcount func(JobClass) int) GroupSummary {
	s := GroupSummary{Classes: len(jobs)}
	for _, j := range jobs {
		s.Employees += headcount(j)
	}
	s.AverageMaxSalary = averageMaxSalary(jobs)
	return s
}

func averageMaxSalary(jobs []JobClass) float64 {
	if len(jobs) == 0 {
		return 0
	}
	var sum float64
	for _, j := range jobs {
		sum += j.MaxSalary
	}
	return sum / float64(len(jobs))
}
