package restaurant

import "github.com/foodops/foodops-kernel/internal/money"

// Position is an employee's role in the restaurant.
type Position string

const (
	PositionCuisine Position = "CUISINE"
	PositionSalle   Position = "SALLE"
	PositionManager Position = "MANAGER"
	PositionPlonge  Position = "PLONGE"
	PositionCaisse  Position = "CAISSE"
)

// Weight is the capacity contribution weight per position, used by the
// restaurant capacity formula.
func (p Position) Weight() float64 {
	switch p {
	case PositionCuisine:
		return 1.2
	case PositionSalle:
		return 1.0
	case PositionManager:
		return 0.4
	case PositionPlonge:
		return 0.5
	case PositionCaisse:
		return 0.6
	default:
		return 0.5
	}
}

// Contract is an employee's contract type.
type Contract string

const (
	ContractCDI      Contract = "CDI"
	ContractCDD      Contract = "CDD"
	ContractExtra    Contract = "EXTRA"
	ContractApprenti Contract = "APPRENTI"
	ContractStage    Contract = "STAGE"
)

// Employee is a restaurant staff member. Invariants: STAGE contracts carry
// zero salary; APPRENTI contracts cap experience at 24 months.
type Employee struct {
	ID                string
	Name              string
	Position          Position
	Contract          Contract
	GrossMonthlySalary money.Money
	Productivity      float64 // [0.5, 2.0]
	ExperienceMonths   int
	PartTime          bool
	PartTimeRatio     float64 // (0, 1]
	SundayWork        bool
	OvertimeEligible  bool
}

// EffectiveRatio is 1.0 for full-time employees, PartTimeRatio otherwise.
func (e Employee) EffectiveRatio() float64 {
	if !e.PartTime {
		return 1.0
	}
	return e.PartTimeRatio
}

// Validate enforces the Employee invariants.
func (e Employee) Validate() error {
	if e.ID == "" {
		return newValidationError("employee missing id")
	}
	if e.Productivity < 0.5 || e.Productivity > 2.0 {
		return newValidationError("employee %s productivity %v out of range 0.5..2.0", e.ID, e.Productivity)
	}
	if e.ExperienceMonths < 0 {
		return newValidationError("employee %s has negative experience", e.ID)
	}
	if e.Contract == ContractStage && !e.GrossMonthlySalary.IsZero() {
		return newValidationError("employee %s: STAGE contract must carry zero salary", e.ID)
	}
	if e.Contract == ContractApprenti && e.ExperienceMonths > 24 {
		return newValidationError("employee %s: APPRENTI contract experience exceeds 24 months", e.ID)
	}
	if e.PartTime && (e.PartTimeRatio <= 0 || e.PartTimeRatio > 1) {
		return newValidationError("employee %s part-time ratio %v out of range (0,1]", e.ID, e.PartTimeRatio)
	}
	return nil
}

// CapacityContribution is the employee's term in the restaurant capacity
// formula: position weight × productivity × part-time ratio ×
// (1 + min(0.2, experience_months/120)).
func (e Employee) CapacityContribution() float64 {
	experienceBonus := float64(e.ExperienceMonths) / 120.0
	if experienceBonus > 0.2 {
		experienceBonus = 0.2
	}
	return e.Position.Weight() * e.Productivity * e.EffectiveRatio() * (1 + experienceBonus)
}

// HourlyRate derives an hourly rate from the monthly salary using the
// standard French legal monthly hours (151.67h), the same constant the
// prototype payroll calculator uses.
func (e Employee) HourlyRate() money.Money {
	return e.GrossMonthlySalary.Div(legalMonthlyHours)
}

// IsEligibleForOvertime mirrors the prototype's eligibility check.
func (e Employee) IsEligibleForOvertime() bool {
	return e.OvertimeEligible
}
