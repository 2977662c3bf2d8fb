package catalog

// Restaurant is a restaurant document with its identifiers rendered as hex strings.
// Scraped fields keep their stored type and go through the normalize package on the way out.
type Restaurant struct {
	ID              string
	StoreID         string
	Name            string
	Description     string
	DeliveryFee     any
	ETA             any
	AverageRating   any
	NumberOfRatings any
	PriceRange      any
	DistanceMiles   any
	Link            string
	Address         string
	OperatingHours  string
	// Items lists menu item ids in menu order. Nil when the document has no items field.
	Items []string
}

// MenuItem is an item document.
type MenuItem struct {
	ID            string
	StoreID       string
	RestaurantID  any
	Name          string
	Description   string
	Price         any
	RatingPercent any
	ReviewCount   any
	ImageURL      string
}
