package models

// Unknown marks an address field that was never captured for a stored location.
const Unknown = "NA"

// AdmLevel is an administrative hierarchy level, from country (Adm0) down to neighbourhood (Adm5).
type AdmLevel string

const (
	Adm0 AdmLevel = "Adm0"
	Adm1 AdmLevel = "Adm1"
	Adm2 AdmLevel = "Adm2"
	Adm3 AdmLevel = "Adm3"
	Adm4 AdmLevel = "Adm4"
	Adm5 AdmLevel = "Adm5"
)

// AdmLayer tags a stored location with the name of the administrative area it falls into.
type AdmLayer struct {
	Level AdmLevel `json:"level"`
	Name  string   `json:"name"`
}

// UserEnteredAddress is the address typed in by whoever captured the location.
type UserEnteredAddress struct {
	Street   string `json:"street"`
	Locality string `json:"locality"`
	Landmark string `json:"landmark"`
}

// IsUnknown reports whether none of the address fields were captured.
func (a UserEnteredAddress) IsUnknown() bool {
	return a.Street == Unknown && a.Locality == Unknown && a.Landmark == Unknown
}

// StoredLocation represents a single point of interest held in the spatial store, with its administrative layers and address joined in.
type StoredLocation struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
	Tags      string             `json:"tags"`
	Category  string             `json:"category"`
	AdmLayers []AdmLayer         `json:"adm_layers"`
	Address   UserEnteredAddress `json:"address"`
}
