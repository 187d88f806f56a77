package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// latLongPattern accepts "lat,long" with lat in [-90,90] and long in [-180,180].
var latLongPattern = regexp.MustCompile(
	`^([-+]?(?:[1-8]?\d(?:\.\d+)?|90(?:\.0+)?)),\s*([-+]?(?:1[0-7]\d(?:\.\d+)?|180(?:\.0+)?|[1-9]?\d(?:\.\d+)?))$`,
)

// Query is a classified user query: either a CoordinatePair or FreeText.
type Query interface {
	isQuery()
}

// CoordinatePair is a query made of a latitude and a longitude.
type CoordinatePair struct {
	Lat  float64
	Long float64
}

// FreeText is any query that is not a coordinate pair.
type FreeText struct {
	Text   string
	Tokens []string
}

func (CoordinatePair) isQuery() {}
func (FreeText) isQuery()       {}

// Classify decides which lookup strategy applies to text. The check is syntactic only.
func Classify(text string) (Query, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: query is empty", ErrInvalidInput)
	}

	if m := latLongPattern.FindStringSubmatch(trimmed); m != nil {
		lat, latErr := strconv.ParseFloat(m[1], 64)
		long, longErr := strconv.ParseFloat(m[2], 64)
		if latErr == nil && longErr == nil {
			return CoordinatePair{Lat: lat, Long: long}, nil
		}
	}

	return FreeText{Text: trimmed, Tokens: strings.Fields(trimmed)}, nil
}

func validCoordinates(lat, long float64) bool {
	return lat >= -90 && lat <= 90 && long >= -180 && long <= 180
}
