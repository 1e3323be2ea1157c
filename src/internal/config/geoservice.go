package config

import (
	"github.com/spf13/viper"
	"googlemaps.github.io/maps"
)

type GeoService struct {
	Client *maps.Client
}

// NewGeoService builds the geocoding client. Without an API key the feed falls
// back to the configured default coordinate, so a nil client is fine.
func NewGeoService(viper *viper.Viper) (*GeoService, error) {
	apiKey := viper.GetString("thirdparty.google.api_key")
	if apiKey == "" {
		return &GeoService{}, nil
	}

	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeoService{Client: client}, nil
}
