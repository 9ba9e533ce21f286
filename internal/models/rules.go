package models

import "github.com/shopspring/decimal"

var (
	feeRateTransfer = decimal.RequireFromString("0.01")
	feeRatePayment  = decimal.RequireFromString("0.015")
	feeWithdrawal   = decimal.RequireFromString("2.50")

	riskMedium     = decimal.RequireFromString("0.4")
	riskMediumHigh = decimal.RequireFromString("0.7")

	riskLowCeiling        = decimal.NewFromInt(2000)
	riskMediumCeiling     = decimal.NewFromInt(5000)
	riskMediumHighCeiling = decimal.NewFromInt(10000)
)

// ConvertCurrency converts amount between two currencies of the fixed weight
// table: amount * weight(from) / weight(to). Division runs at the decimal
// package's default precision (16 fractional digits). Identity conversions
// return the amount untouched.
func ConvertCurrency(amount decimal.Decimal, from, to Currency) decimal.Decimal {
	if from == to {
		return amount
	}
	return amount.
		Mul(decimal.NewFromInt(from.Weight())).
		Div(decimal.NewFromInt(to.Weight()))
}

// FeeFor computes the fee owed for a transaction of the given type and
// amount. WITHDRAWAL carries a flat fee regardless of amount or currency.
func FeeFor(transactionType TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch transactionType {
	case TypeTransfer:
		return amount.Mul(feeRateTransfer)
	case TypePayment:
		return amount.Mul(feeRatePayment)
	case TypeWithdrawal:
		return feeWithdrawal
	default:
		return decimal.Zero
	}
}

// RiskScore classifies a transaction's fraud likelihood from its amount
// alone. Boundary amounts fall into the lower band.
func RiskScore(t *Transaction) decimal.Decimal {
	switch {
	case t.Amount.LessThanOrEqual(riskLowCeiling):
		return decimal.Zero
	case t.Amount.LessThanOrEqual(riskMediumCeiling):
		return riskMedium
	case t.Amount.LessThanOrEqual(riskMediumHighCeiling):
		return riskMediumHigh
	default:
		return decimal.NewFromInt(1)
	}
}
