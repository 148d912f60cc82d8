package compliance

// asymptoticCriticalT is the two-tailed 0.05 critical value of the normal
// distribution, used beyond the last tabulated degree of freedom.
const asymptoticCriticalT = 1.960

type tRow struct {
	df    int
	value float64
}

// criticalT05 lists two-tailed 0.05 critical values of Student's t, sorted by df.
var criticalT05 = [...]tRow{
	{1, 12.706}, {2, 4.303}, {3, 3.182}, {4, 2.776}, {5, 2.571},
	{6, 2.447}, {7, 2.365}, {8, 2.306}, {9, 2.262}, {10, 2.228},
	{11, 2.201}, {12, 2.179}, {13, 2.160}, {14, 2.145}, {15, 2.131},
	{16, 2.120}, {17, 2.110}, {18, 2.101}, {19, 2.093}, {20, 2.086},
	{21, 2.080}, {22, 2.074}, {23, 2.069}, {24, 2.064}, {25, 2.060},
	{26, 2.056}, {27, 2.052}, {28, 2.048}, {29, 2.045}, {30, 2.042},
	{40, 2.021}, {50, 2.009}, {60, 2.000}, {80, 1.990}, {100, 1.984},
	{120, 1.980},
}

// CriticalT returns the two-tailed 0.05 critical t value for df degrees of
// freedom, interpolating linearly between tabulated rows. df below 1 uses
// the df=1 row.
func CriticalT(df int) float64 {
	first, last := criticalT05[0], criticalT05[len(criticalT05)-1]
	if df <= first.df {
		return first.value
	}
	if df > last.df {
		return asymptoticCriticalT
	}
	for i := 1; i < len(criticalT05); i++ {
		hi := criticalT05[i]
		if df > hi.df {
			continue
		}
		if df == hi.df {
			return hi.value
		}
		lo := criticalT05[i-1]
		frac := float64(df-lo.df) / float64(hi.df-lo.df)
		return lo.value + frac*(hi.value-lo.value)
	}
	return asymptoticCriticalT
}
