package service

import (
	"strconv"

	"place-resolver/internal/models"
)

// normalizeStored maps a stored location to the response shape.
// When several layers share a level the last one wins.
func normalizeStored(loc models.StoredLocation) models.ResolvedPlace {
	place := models.ResolvedPlace{
		Latitude:      formatCoordinate(loc.Latitude),
		Longitude:     formatCoordinate(loc.Longitude),
		LocationName:  loc.Name,
		StreetAddress: orUnknown(loc.Address.Street),
		Locality:      orUnknown(loc.Address.Locality),
		Landmark:      orUnknown(loc.Address.Landmark),
	}

	for _, layer := range loc.AdmLayers {
		switch layer.Level {
		case models.Adm0:
			place.Adm0 = layer.Name
		case models.Adm1:
			place.Adm1 = layer.Name
		case models.Adm2:
			place.Adm2 = layer.Name
		case models.Adm3:
			place.Adm3 = layer.Name
		case models.Adm4:
			place.Adm4 = layer.Name
		case models.Adm5:
			place.Adm5 = layer.Name
		}
	}

	return place
}

// normalizeRemote maps a provider feature to the response shape.
// Locality feeds adm3, adm5 and locality alike.
func normalizeRemote(f models.RemoteFeature) models.ResolvedPlace {
	return models.ResolvedPlace{
		Latitude:      formatCoordinate(f.Latitude),
		Longitude:     formatCoordinate(f.Longitude),
		LocationName:  f.Name,
		Adm0:          f.Country,
		Adm1:          f.Region,
		Adm2:          f.County,
		Adm3:          f.Locality,
		Adm4:          f.Village,
		Adm5:          f.Locality,
		StreetAddress: f.Borough,
		Locality:      f.Locality,
		Landmark:      f.Neighbourhood,
	}
}

func normalizeRemoteAll(features []models.RemoteFeature) []models.ResolvedPlace {
	places := make([]models.ResolvedPlace, 0, len(features))
	for _, f := range features {
		places = append(places, normalizeRemote(f))
	}
	return places
}

// overlay fills the gaps in base with values from remote. A field is a gap when it
// is empty or Unknown; everything the store already knows is kept.
func overlay(base, remote models.ResolvedPlace) models.ResolvedPlace {
	fill := func(dst *string, src string) {
		if src != "" && (*dst == "" || *dst == models.Unknown) {
			*dst = src
		}
	}

	fill(&base.Latitude, remote.Latitude)
	fill(&base.Longitude, remote.Longitude)
	fill(&base.LocationName, remote.LocationName)
	fill(&base.Adm0, remote.Adm0)
	fill(&base.Adm1, remote.Adm1)
	fill(&base.Adm2, remote.Adm2)
	fill(&base.Adm3, remote.Adm3)
	fill(&base.Adm4, remote.Adm4)
	fill(&base.Adm5, remote.Adm5)
	fill(&base.StreetAddress, remote.StreetAddress)
	fill(&base.Locality, remote.Locality)
	fill(&base.Landmark, remote.Landmark)

	return base
}

func hasMissingAddress(p models.ResolvedPlace) bool {
	return p.StreetAddress == models.Unknown && p.Locality == models.Unknown && p.Landmark == models.Unknown
}

func orUnknown(s string) string {
	if s == "" {
		return models.Unknown
	}
	return s
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
