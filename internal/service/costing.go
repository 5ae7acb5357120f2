package service

import "github.com/shopspring/decimal"

// costScale is the number of decimals averages are kept at.
const costScale = 4

// movingAverage folds an inbound movement into the current average:
//
//	new_avg = (old_qty*old_avg + moved_qty*cost) / (old_qty + moved_qty)
//
// With no prior stock (old_qty <= 0) the incoming cost becomes the average.
func movingAverage(oldQty, oldAvg, movedQty, cost decimal.Decimal) decimal.Decimal {
	if !oldQty.IsPositive() {
		return cost.Round(costScale)
	}
	total := oldQty.Add(movedQty)
	if !total.IsPositive() {
		return cost.Round(costScale)
	}
	value := oldQty.Mul(oldAvg).Add(movedQty.Mul(cost))
	return value.Div(total).Round(costScale)
}
