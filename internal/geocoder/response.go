package geocoder

import "place-resolver/internal/models"

// featureCollection is the GeoJSON body returned by the search and reverse endpoints.
type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		Name          string `json:"name"`
		Label         string `json:"label"`
		Country       string `json:"country"`
		Region        string `json:"region"`
		County        string `json:"county"`
		Locality      string `json:"locality"`
		Village       string `json:"village"`
		Neighbourhood string `json:"neighbourhood"`
		Borough       string `json:"borough"`
	} `json:"properties"`
}

func (fc featureCollection) toFeatures() []models.RemoteFeature {
	features := make([]models.RemoteFeature, 0, len(fc.Features))
	for _, f := range fc.Features {
		rf := models.RemoteFeature{
			Name:          f.Properties.Name,
			Label:         f.Properties.Label,
			Country:       f.Properties.Country,
			Region:        f.Properties.Region,
			County:        f.Properties.County,
			Locality:      f.Properties.Locality,
			Village:       f.Properties.Village,
			Neighbourhood: f.Properties.Neighbourhood,
			Borough:       f.Properties.Borough,
		}
		// GeoJSON positions are [lon, lat]
		if len(f.Geometry.Coordinates) >= 2 {
			rf.Longitude = f.Geometry.Coordinates[0]
			rf.Latitude = f.Geometry.Coordinates[1]
		}
		features = append(features, rf)
	}
	return features
}
