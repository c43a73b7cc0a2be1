package catalog

// PriceCategory is a qualitative price band derived from the average price.
type PriceCategory string

const (
	PriceCheap              PriceCategory = "cheap"
	PriceAverage            PriceCategory = "average"
	PriceExpensive          PriceCategory = "expensive"
	PriceExtremelyExpensive PriceCategory = "extremely expensive"
)

// Lower bounds of the bands. A price equal to a bound belongs to the higher band.
const (
	averagePriceFrom   = 25000
	expensivePriceFrom = 45000
	extremePriceFrom   = 100000
)

func CategoryFor(price float64) PriceCategory {
	switch {
	case price < averagePriceFrom:
		return PriceCheap
	case price < expensivePriceFrom:
		return PriceAverage
	case price < extremePriceFrom:
		return PriceExpensive
	default:
		return PriceExtremelyExpensive
	}
}
