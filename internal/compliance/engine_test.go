package compliance

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AnalyzeSuite struct {
	suite.Suite
}

func TestAnalyzeSuite(t *testing.T) {
	suite.Run(t, new(AnalyzeSuite))
}

// staffedJurisdiction returns four male-dominated and four female-dominated
// classes with the given maximum salaries.
func staffedJurisdiction(maleMax, femaleMax float64) []JobClass {
	var jobs []JobClass
	for i := 0; i < 4; i++ {
		p := float64(150 + 50*i)
		jobs = append(jobs, maleClass(p, maleMax), femaleClass(p, femaleMax))
	}
	return jobs
}

func (s *AnalyzeSuite) TestEmptyInput() {
	v := Analyze(nil)
	s.Equal(StateEmpty, v.State)
	s.False(v.IsCompliant)
	s.False(v.RequiresManualReview)
	s.False(v.StatisticalTest.IsPresent())
	s.False(v.SalaryRangeTest.IsPresent())
	s.False(v.ExceptionalServiceTest.IsPresent())
	s.Equal(msgNoData, v.Message)
	s.Equal(GeneralInfo{}, v.GeneralInfo)
}

func (s *AnalyzeSuite) TestManualReview() {
	s.Run("three male-dominated classes require review", func() {
		var jobs []JobClass
		for i := 0; i < 3; i++ {
			jobs = append(jobs, JobClass{Points: float64(100 * (i + 1)), Males: 10, MaxSalary: 4000})
		}
		for i := 0; i < 5; i++ {
			jobs = append(jobs, JobClass{Points: float64(100 * (i + 1)), Females: 10, MaxSalary: 4000})
		}

		v := Analyze(jobs)
		s.Equal(StateManualReview, v.State)
		s.True(v.RequiresManualReview)
		s.False(v.IsCompliant)
		s.Contains(v.Message, "manual review")
	})

	s.Run("review overrides passing sub-tests", func() {
		for males := 1; males <= 3; males++ {
			var jobs []JobClass
			for i := 0; i < males; i++ {
				jobs = append(jobs, maleClass(100, 4000))
			}
			jobs = append(jobs, femaleClass(100, 4000), femaleClass(200, 4100))

			v := Analyze(jobs)
			salary, ok := v.SalaryRangeTest.Get()
			s.Require().True(ok)
			esp, ok := v.ExceptionalServiceTest.Get()
			s.Require().True(ok)
			s.True(salary.Passed)
			s.True(esp.Passed)

			s.True(v.RequiresManualReview, "males=%d", males)
			s.False(v.IsCompliant, "males=%d", males)
		}
	})

	s.Run("sub-tests are still computed under review", func() {
		v := Analyze([]JobClass{
			maleClass(100, 2150), maleClass(200, 3050),
			femaleClass(100, 1850), femaleClass(200, 2950),
		})
		s.True(v.RequiresManualReview)
		stat := v.StatisticalTest.OrZero()
		s.True(stat.Applicable)
		s.Equal(2, stat.FemaleBelowPredicted)
	})
}

func (s *AnalyzeSuite) TestNoMaleDominatedClasses() {
	jobs := []JobClass{
		femaleClass(100, 2000), femaleClass(200, 3000),
		femaleClass(300, 4000), femaleClass(400, 5000),
	}
	v := Analyze(jobs)

	stat := v.StatisticalTest.OrZero()
	s.Zero(stat.UnderpaymentRatio)
	s.False(stat.Applicable)

	salary := v.SalaryRangeTest.OrZero()
	s.True(salary.Passed)
	s.False(salary.Applicable)

	s.True(v.RequiresManualReview)
	s.False(v.IsCompliant)
	s.Equal(0, v.GeneralInfo.MaleDominated.Classes)
	s.Equal(4, v.GeneralInfo.FemaleDominated.Classes)
}

func (s *AnalyzeSuite) TestEvaluated() {
	s.Run("compliant jurisdiction", func() {
		v := Analyze(staffedJurisdiction(5000, 4500))
		s.Equal(StateEvaluated, v.State)
		s.False(v.RequiresManualReview)
		s.True(v.IsCompliant)
		s.Equal(msgCompliant, v.Message)
	})

	s.Run("salary range boundary is inclusive", func() {
		v := Analyze(staffedJurisdiction(5000, 4000))
		salary := v.SalaryRangeTest.OrZero()
		s.InDelta(0.80, salary.Ratio, 1e-12)
		s.True(salary.Passed)
		s.True(v.IsCompliant)
	})

	s.Run("failing salary range test", func() {
		v := Analyze(staffedJurisdiction(5000, 3000))
		s.False(v.IsCompliant)
		s.Contains(v.Message, "salary range test")
		s.NotContains(v.Message, "exceptional service pay test")
	})

	s.Run("failing exceptional service pay test", func() {
		jobs := staffedJurisdiction(5000, 4800)
		for i := range jobs {
			if jobs[i].Males > 0 {
				jobs[i].ExceptionalServiceCategory = "Hazard"
			}
		}
		v := Analyze(jobs)
		s.False(v.IsCompliant)
		s.Contains(v.Message, "exceptional service pay test")
	})

	s.Run("both tests failing are named", func() {
		jobs := staffedJurisdiction(5000, 1000)
		for i := range jobs {
			if jobs[i].Males > 0 {
				jobs[i].ExceptionalServiceCategory = "Hazard"
			}
		}
		v := Analyze(jobs)
		s.Contains(v.Message, "salary range test and exceptional service pay test")
	})

	s.Run("statistical test does not gate compliance", func() {
		jobs := staffedJurisdiction(5000, 4200)
		v := Analyze(jobs)
		stat := v.StatisticalTest.OrZero()
		s.False(stat.UnderpaymentRatioPassed)
		s.True(v.IsCompliant)
	})

	s.Run("low male ESP incidence passes", func() {
		var jobs []JobClass
		for i := 0; i < 10; i++ {
			j := maleClass(float64(100+10*i), 5000)
			if i == 0 {
				j.ExceptionalServiceCategory = "Longevity"
			}
			jobs = append(jobs, j)
		}
		jobs = append(jobs, femaleClass(100, 4500), femaleClass(200, 4600))
		v := Analyze(jobs)
		s.True(v.ExceptionalServiceTest.OrZero().Passed)
		s.True(v.IsCompliant)
	})
}

func (s *AnalyzeSuite) TestOutcome() {
	s.Equal(OutcomeNoData, Analyze(nil).Outcome())
	s.Equal(OutcomeCompliant, Analyze(staffedJurisdiction(5000, 4500)).Outcome())
	s.Equal(OutcomeNotCompliant, Analyze(staffedJurisdiction(5000, 3000)).Outcome())
	s.Equal(OutcomeManualReview, Analyze(staffedJurisdiction(5000, 4500)[2:]).Outcome())
}

func (s *AnalyzeSuite) TestDoesNotModifyInput() {
	jobs := staffedJurisdiction(5000, 3000)
	jobs[0].ExceptionalServiceCategory = "Hazard"
	before := make([]JobClass, len(jobs))
	copy(before, jobs)

	_ = Analyze(jobs)
	s.Equal(before, jobs)
}

func (s *AnalyzeSuite) TestConcurrentCallsAgree() {
	jobs := staffedJurisdiction(5000, 4100)
	want := Analyze(jobs)

	var wg sync.WaitGroup
	results := make([]Verdict, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Analyze(jobs)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		s.Equal(want, got)
	}
}

func TestVerdictJSON(t *testing.T) {
	t.Run("absent sub-tests encode as null", func(t *testing.T) {
		data, err := json.Marshal(Analyze(nil))
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Nil(t, raw["statistical_test"])
		assert.Nil(t, raw["salary_range_test"])
		assert.Equal(t, "empty", raw["state"])
	})

	t.Run("decoding restores present sub-tests", func(t *testing.T) {
		want := Analyze(staffedJurisdiction(5000, 4500))
		data, err := json.Marshal(want)
		require.NoError(t, err)

		var got Verdict
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, want, got)
	})
}
