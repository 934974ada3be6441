package restaurant

import (
	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/shopspring/decimal"
)

// legalMonthlyHours is 35h/week × 52 weeks ÷ 12 months, the standard the
// prototype's payroll calculator (game_engine/domain/staff/payroll_fr.py)
// uses to derive an hourly rate from a monthly salary.
var legalMonthlyHours = decimal.NewFromFloat(151.67)

// Overtime bands: the first 8 overtime hours pay a 25% premium, hours
// beyond that pay 50%, per the prototype.
var (
	overtimeRate25 = decimal.NewFromFloat(0.25)
	overtimeRate50 = decimal.NewFromFloat(0.50)
	overtimeBand1Hours = decimal.NewFromInt(8)
)

// sundayPremiumRate is 30% of the hourly rate for Sunday hours worked.
var sundayPremiumRate = decimal.NewFromFloat(0.30)

// SocialSecurityCeiling caps the portion of gross salary subject to the
// employee-side capped contribution rate.
var SocialSecurityCeiling = money.MustMoney("3864.0000")

// ChargeRates is one contract type's employer/employee social charge
// rates.
type ChargeRates struct {
	EmployeeRate float64
	EmployerRate float64
}

// SocialChargesTable maps contract type to its charge rates. DefaultSocialCharges
// reproduces the prototype's defaults; a host may override per-contract
// via Simulation.SocialCharges.
type SocialChargesTable map[Contract]ChargeRates

// DefaultSocialCharges reproduces game_engine/domain/staff/payroll_fr.py's
// hardcoded defaults, used when the host doesn't override a contract.
func DefaultSocialCharges() SocialChargesTable {
	return SocialChargesTable{
		ContractCDI:      {EmployeeRate: 0.22, EmployerRate: 0.42},
		ContractCDD:      {EmployeeRate: 0.22, EmployerRate: 0.44},
		ContractExtra:    {EmployeeRate: 0.22, EmployerRate: 0.45},
		ContractApprenti: {EmployeeRate: 0.00, EmployerRate: 0.11},
		ContractStage:    {EmployeeRate: 0.00, EmployerRate: 0.00},
	}
}

// PayrollResult is one employee's computed pay for a period.
type PayrollResult struct {
	EmployeeID             string
	GrossSalary            money.Money
	OvertimeHours          decimal.Decimal
	OvertimePay            money.Money
	SundayHours            decimal.Decimal
	SundayPremium          money.Money
	SocialChargesEmployee  money.Money
	SocialChargesEmployer  money.Money
	NetSalary              money.Money
	TotalEmployerCost       money.Money
}

// ComputePayroll computes one employee's pay for a monthly period, following
// the prototype's overtime/Sunday-premium/social-charges rules. hoursWorked
// and sundayHours are optional monthly inputs; when hoursWorked is zero,
// overtime is skipped (the employee is assumed to have worked their
// standard hours).
func ComputePayroll(e Employee, charges SocialChargesTable, hoursWorked, sundayHours decimal.Decimal) PayrollResult {
	base := e.GrossMonthlySalary.Mul(decimal.NewFromFloat(e.EffectiveRatio()))

	overtimeHours := decimal.Zero
	if hoursWorked.GreaterThan(legalMonthlyHours) {
		overtimeHours = hoursWorked.Sub(legalMonthlyHours)
	}

	overtimePay := money.Zero
	if e.IsEligibleForOvertime() && overtimeHours.IsPositive() {
		hourlyRate := e.HourlyRate()
		hours25 := decimal.Min(overtimeHours, overtimeBand1Hours)
		hours50 := decimal.Max(decimal.Zero, overtimeHours.Sub(overtimeBand1Hours))
		overtimePay = hourlyRate.Mul(hours25.Mul(overtimeRate25)).Add(hourlyRate.Mul(hours50.Mul(overtimeRate50)))
	}

	sundayPremium := money.Zero
	if e.SundayWork && sundayHours.IsPositive() {
		sundayPremium = e.HourlyRate().Mul(sundayHours.Mul(sundayPremiumRate))
	}

	gross := base.Add(overtimePay).Add(sundayPremium)

	rates, ok := charges[e.Contract]
	if !ok {
		defaults := DefaultSocialCharges()
		rates = defaults[e.Contract]
	}

	cappedForEmployee := money.Min(gross, SocialSecurityCeiling)
	employeeCharges := cappedForEmployee.Mul(decimal.NewFromFloat(rates.EmployeeRate))
	employerCharges := gross.Mul(decimal.NewFromFloat(rates.EmployerRate))

	return PayrollResult{
		EmployeeID:            e.ID,
		GrossSalary:           gross,
		OvertimeHours:         overtimeHours,
		OvertimePay:           overtimePay,
		SundayHours:           sundayHours,
		SundayPremium:         sundayPremium,
		SocialChargesEmployee: employeeCharges,
		SocialChargesEmployer: employerCharges,
		NetSalary:             gross.Sub(employeeCharges),
		TotalEmployerCost:     gross.Add(employerCharges),
	}
}

// MonthlyEmployeeCost is the simplified employer-cost figure used when no
// hours-worked input is supplied: gross salary ×
// part-time ratio × (1 + employer charge rate).
func MonthlyEmployeeCost(e Employee, charges SocialChargesTable) money.Money {
	rates, ok := charges[e.Contract]
	if !ok {
		rates = DefaultSocialCharges()[e.Contract]
	}
	base := e.GrossMonthlySalary.Mul(decimal.NewFromFloat(e.EffectiveRatio()))
	return base.Mul(decimal.NewFromFloat(1 + rates.EmployerRate))
}
