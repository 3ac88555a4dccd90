package models

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// GeoMultiPoint represents a GeoJSON MultiPoint, one entry per coverage center.
type GeoMultiPoint struct {
	Type        string      `bson:"type" json:"type"` // Always "MultiPoint"
	Coordinates [][]float64 `bson:"coordinates" json:"coordinates"`
}

// CustomerLocation is a resolved customer coordinate pair.
type CustomerLocation struct {
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lon"`
}

// HasCoordinates reports whether both coordinates are present.
func (c *CustomerLocation) HasCoordinates() bool {
	return c != nil && c.Latitude != nil && c.Longitude != nil
}

// TravelQuote is the travel-fee line item offered to a customer.
type TravelQuote struct {
	ProfessionalID    string  `json:"professionalId"`
	WithinServiceArea bool    `json:"withinServiceArea"`
	DistanceKm        float64 `json:"distanceKm"`
	Fee               float64 `json:"fee"`
	Currency          string  `json:"currency"`
}

// NearbyProfessional is a search hit annotated with distance and fee.
type NearbyProfessional struct {
	Professional Professional `json:"professional"`
	DistanceKm   float64      `json:"distanceKm"`
	TravelFee    float64      `json:"travelFee"`
}
