package compliance

import "strings"

// JobClass is one job classification as reported by a jurisdiction.
// Salaries are monthly amounts.
type JobClass struct {
	Title                      string  `json:"title,omitempty" yaml:"title" validate:"max=200"`
	Points                     float64 `json:"points" yaml:"points" validate:"finite,gte=0"`
	Males                      int     `json:"males" yaml:"males" validate:"gte=0"`
	Females                    int     `json:"females" yaml:"females" validate:"gte=0"`
	MinSalary                  float64 `json:"min_salary" yaml:"min_salary" validate:"finite,gte=0"`
	MaxSalary                  float64 `json:"max_salary" yaml:"max_salary" validate:"finite,gte=0,gtefield=MinSalary"`
	YearsToMax                 float64 `json:"years_to_max,omitempty" yaml:"years_to_max" validate:"finite,gte=0"`
	ExceptionalServiceCategory string  `json:"exceptional_service_category,omitempty" yaml:"exceptional_service_category" validate:"max=100"`
}

// Employees returns the total headcount of the class.
func (j JobClass) Employees() int {
	return j.Males + j.Females
}

// HasExceptionalServicePay reports whether the class offers exceptional service pay.
func (j JobClass) HasExceptionalServicePay() bool {
	return strings.TrimSpace(j.ExceptionalServiceCategory) != ""
}

// Group is the gender-dominance classification of a job class.
type Group string

const (
	GroupMaleDominated   Group = "male_dominated"
	GroupFemaleDominated Group = "female_dominated"
	GroupBalanced        Group = "balanced"
)

// State is the terminal state of an analysis.
type State string

const (
	StateEmpty        State = "empty"
	StateManualReview State = "manual_review"
	StateEvaluated    State = "evaluated"
)

// GroupSummary holds descriptive statistics for one group of classes.
type GroupSummary struct {
	Classes          int     `json:"classes"`
	Employees        int     `json:"employees"`
	AverageMaxSalary float64 `json:"average_max_salary"`
}

// GeneralInfo summarizes the jurisdiction's classes by group.
type GeneralInfo struct {
	MaleDominated   GroupSummary `json:"male_dominated"`
	FemaleDominated GroupSummary `json:"female_dominated"`
	Balanced        GroupSummary `json:"balanced"`
	All             GroupSummary `json:"all"`
}

// StatisticalTestResult compares actual pay against predicted pay for the
// male- and female-dominated groups.
type StatisticalTestResult struct {
	Applicable              bool    `json:"applicable"`
	MaleBelowPredicted      int     `json:"male_below_predicted"`
	FemaleBelowPredicted    int     `json:"female_below_predicted"`
	MalePercentBelow        float64 `json:"male_percent_below"`
	FemalePercentBelow      float64 `json:"female_percent_below"`
	UnderpaymentRatio       float64 `json:"underpayment_ratio"`
	UnderpaymentRatioPassed bool    `json:"underpayment_ratio_passed"`
	MaleMeanDifference      float64 `json:"male_mean_difference"`
	FemaleMeanDifference    float64 `json:"female_mean_difference"`
	TValue                  float64 `json:"t_value"`
	DegreesOfFreedom        int     `json:"degrees_of_freedom"`
	CriticalValue           float64 `json:"critical_value"`
	TTestPassed             bool    `json:"t_test_passed"`
}

// SalaryRangeTestResult compares average maximum pay between the groups.
type SalaryRangeTestResult struct {
	Applicable    bool    `json:"applicable"`
	MaleAverage   float64 `json:"male_average"`
	FemaleAverage float64 `json:"female_average"`
	Ratio         float64 `json:"ratio"`
	Passed        bool    `json:"passed"`
}

// ExceptionalServiceTestResult compares the incidence of exceptional service
// pay between the groups.
type ExceptionalServiceTestResult struct {
	Applicable       bool    `json:"applicable"`
	MaleWithESP      int     `json:"male_with_esp"`
	FemaleWithESP    int     `json:"female_with_esp"`
	MalePercentage   float64 `json:"male_percentage"`
	FemalePercentage float64 `json:"female_percentage"`
	Ratio            float64 `json:"ratio"`
	Passed           bool    `json:"passed"`
	Note             string  `json:"note,omitempty"`
}

// Verdict is the outcome of a compliance analysis. It is built fresh for
// every call and never mutated afterwards.
type Verdict struct {
	State                  State                                  `json:"state"`
	IsCompliant            bool                                   `json:"is_compliant"`
	RequiresManualReview   bool                                   `json:"requires_manual_review"`
	GeneralInfo            GeneralInfo                            `json:"general_info"`
	PayLine                PayLine                                `json:"pay_line"`
	StatisticalTest        Optional[StatisticalTestResult]        `json:"statistical_test"`
	SalaryRangeTest        Optional[SalaryRangeTestResult]        `json:"salary_range_test"`
	ExceptionalServiceTest Optional[ExceptionalServiceTestResult] `json:"exceptional_service_test"`
	Message                string                                 `json:"message"`
}

// Outcome labels a verdict for metrics and audit events.
type Outcome string

const (
	OutcomeCompliant    Outcome = "compliant"
	OutcomeNotCompliant Outcome = "not_compliant"
	OutcomeManualReview Outcome = "manual_review"
	OutcomeNoData       Outcome = "no_data"
)

// Outcome collapses the verdict into a single label.
func (v Verdict) Outcome() Outcome {
	switch {
	case v.State == StateEmpty:
		return OutcomeNoData
	case v.RequiresManualReview:
		return OutcomeManualReview
	case v.IsCompliant:
		return OutcomeCompliant
	default:
		return OutcomeNotCompliant
	}
}
