package types

// TaxRateFilter narrows tax rate listings
type TaxRateFilter struct {
	TaxRateIDs     []string
	TaxCategoryIDs []string
	ZoneID         string
}

// TaxCategoryID identifies a product or fee tax category. The empty value means untaxed.
type TaxCategoryID = string
