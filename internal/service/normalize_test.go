package service

import (
	"testing"

	"place-resolver/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStored(t *testing.T) {
	loc := models.StoredLocation{
		ID:        7,
		Name:      "Candies Cafe",
		Latitude:  19.0596,
		Longitude: 72.8347,
		AdmLayers: []models.AdmLayer{
			{Level: models.Adm0, Name: "India"},
			{Level: models.Adm1, Name: "Maharashtra"},
			{Level: models.Adm3, Name: "Bandra"},
			{Level: models.Adm3, Name: "Bandra West"},
			{Level: "Adm9", Name: "ignored"},
		},
		Address: models.UserEnteredAddress{
			Street:   "Linking Road",
			Locality: "",
			Landmark: "Near Elco Market",
		},
	}

	assert.Equal(t, models.ResolvedPlace{
		Latitude:      "19.0596",
		Longitude:     "72.8347",
		LocationName:  "Candies Cafe",
		Adm0:          "India",
		Adm1:          "Maharashtra",
		Adm3:          "Bandra West",
		StreetAddress: "Linking Road",
		Locality:      models.Unknown,
		Landmark:      "Near Elco Market",
	}, normalizeStored(loc))
}

func TestNormalizeRemote(t *testing.T) {
	f := models.RemoteFeature{
		Latitude:      19.07,
		Longitude:     72.87,
		Name:          "Kalina",
		Country:       "India",
		Region:        "Maharashtra",
		County:        "Mumbai Suburban",
		Locality:      "Mumbai",
		Village:       "Kolivery",
		Neighbourhood: "Kalina",
		Borough:       "Santacruz East",
	}

	assert.Equal(t, models.ResolvedPlace{
		Latitude:      "19.07",
		Longitude:     "72.87",
		LocationName:  "Kalina",
		Adm0:          "India",
		Adm1:          "Maharashtra",
		Adm2:          "Mumbai Suburban",
		Adm3:          "Mumbai",
		Adm4:          "Kolivery",
		Adm5:          "Mumbai",
		StreetAddress: "Santacruz East",
		Locality:      "Mumbai",
		Landmark:      "Kalina",
	}, normalizeRemote(f))
}

func TestNormalizeRemoteAll(t *testing.T) {
	assert.Equal(t, []models.ResolvedPlace{}, normalizeRemoteAll(nil))

	places := normalizeRemoteAll([]models.RemoteFeature{{Name: "a"}, {Name: "b"}})
	assert.Len(t, places, 2)
	assert.Equal(t, "b", places[1].LocationName)
}

func TestOverlay(t *testing.T) {
	base := models.ResolvedPlace{
		Latitude:      "19.07",
		Longitude:     "72.87",
		LocationName:  "Kalina Tea Stall",
		Adm0:          "India",
		StreetAddress: models.Unknown,
		Locality:      models.Unknown,
		Landmark:      models.Unknown,
	}
	remote := models.ResolvedPlace{
		Latitude:      "19.0701",
		Longitude:     "72.8702",
		LocationName:  "Kalina",
		Adm0:          "Bharat",
		Adm1:          "Maharashtra",
		StreetAddress: "Santacruz East",
		Locality:      "Mumbai",
	}

	assert.Equal(t, models.ResolvedPlace{
		Latitude:      "19.07",
		Longitude:     "72.87",
		LocationName:  "Kalina Tea Stall",
		Adm0:          "India",
		Adm1:          "Maharashtra",
		StreetAddress: "Santacruz East",
		Locality:      "Mumbai",
		Landmark:      models.Unknown,
	}, overlay(base, remote))
}
