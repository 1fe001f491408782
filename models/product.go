package models

// ProductRecord holds one unprocessed catalog row as read from the scraped CSV.
// Absent cells are empty strings; nothing here has been validated.
type ProductRecord struct {
	Title           string
	Category        string
	PriceRaw        string
	RatingRaw       string
	ReviewsRaw      string
	AvailabilityRaw string
	Features        string
}

// ProductSpecs are the hardware attributes pulled out of the free-text features.
// A nil field means the pattern did not match.
type ProductSpecs struct {
	RAMGB          *int
	StorageGB      *int
	BatteryMAh     *int
	DisplayInch    *float64
	ProcessorBrand *string
	ProcessorType  *string
}
