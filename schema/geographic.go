package schema

// Location - latitude and longitude in degrees
type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// GeoJSON is a mongodb geospatial point. Coordinates are stored in
// [longitude, latitude] order so 2dsphere indexes can consume them.
type GeoJSON struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewPoint returns a GeoJSON point for the given coordinates
func NewPoint(longitude, latitude float64) *GeoJSON {
	return &GeoJSON{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}

// Location converts a GeoJSON point back into a Location
func (g *GeoJSON) Location() *Location {
	if g == nil || len(g.Coordinates) < 2 {
		return nil
	}
	return &Location{
		Longitude: g.Coordinates[0],
		Latitude:  g.Coordinates[1],
	}
}
