package pricing

// ApplyDiscount returns the sale price for a tag price at salePercent off.
func ApplyDiscount(tagPrice, salePercent float64) float64 {
	return tagPrice * (1 - salePercent/100)
}

// AddTax turns a pre-tax amount into a tax-inclusive one.
func AddTax(preTax float64) float64 {
	return preTax * (1 + TaxRate)
}

// RemoveTax turns a tax-inclusive amount into a pre-tax one.
func RemoveTax(taxInclusive float64) float64 {
	return taxInclusive / (1 + TaxRate)
}

// TaxOn returns the tax owed on a pre-tax amount.
func TaxOn(preTax float64) float64 {
	return preTax * TaxRate
}
