package compliance

// Dominance thresholds. They are intentionally asymmetric; a class at or
// above the male threshold can never reach the female one.
const (
	maleDominatedThreshold   = 0.80
	femaleDominatedThreshold = 0.70
)

// Groups partitions classes with at least one employee by gender dominance.
type Groups struct {
	Male     []JobClass
	Female   []JobClass
	Balanced []JobClass
}

// Classify returns the group of a class. ok is false for classes with no
// employees, which belong to no group.
func Classify(j JobClass) (group Group, ok bool) {
	total := j.Males + j.Females
	if total <= 0 {
		return "", false
	}
	switch {
	case float64(j.Males)/float64(total) >= maleDominatedThreshold:
		return GroupMaleDominated, true
	case float64(j.Females)/float64(total) >= femaleDominatedThreshold:
		return GroupFemaleDominated, true
	default:
		return GroupBalanced, true
	}
}

// Partition classifies every class, preserving input order inside each group.
func Partition(jobs []JobClass) Groups {
	var g Groups
	for _, j := range jobs {
		group, ok := Classify(j)
		if !ok {
			continue
		}
		switch group {
		case GroupMaleDominated:
			g.Male = append(g.Male, j)
		case GroupFemaleDominated:
			g.Female = append(g.Female, j)
		default:
			g.Balanced = append(g.Balanced, j)
		}
	}
	return g
}

// comparable reports whether both gender-dominated groups have members.
func (g Groups) comparable() bool {
	return len(g.Male) > 0 && len(g.Female) > 0
}
