package models

// RemoteFeature is a single place returned by the remote geocoding provider.
type RemoteFeature struct {
	Latitude      float64
	Longitude     float64
	Name          string
	Label         string
	Country       string
	Region        string
	County        string
	Locality      string
	Village       string
	Neighbourhood string
	Borough       string
}

// ResolvedPlace is the canonical response shape for a resolved query.
type ResolvedPlace struct {
	Latitude      string `json:"latitude"`
	Longitude     string `json:"longitude"`
	LocationName  string `json:"location_name"`
	Adm0          string `json:"adm0"`
	Adm1          string `json:"adm1"`
	Adm2          string `json:"adm2"`
	Adm3          string `json:"adm3"`
	Adm4          string `json:"adm4"`
	Adm5          string `json:"adm5"`
	StreetAddress string `json:"street_address"`
	Locality      string `json:"locality"`
	Landmark      string `json:"landmark"`
}
