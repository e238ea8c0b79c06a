// Package resolver turns a track ID and quality tier into a playable
// MediaURL by combining the player-data transport with the payload decoder.
package resolver

import (
	"main/pkg/decoder"
	"main/pkg/logger"
	"main/pkg/models"
)

// trackFormat is the fixed format parameter sent with every request.
const trackFormat = "mp4"

// StreamSource supplies raw player data for a track/quality pair.
// Implemented by api.Client.
type StreamSource interface {
	GetStreamData(trackID, quality, format string) (*models.StreamData, error)
}

// Resolver resolves stream URLs for tracks
type Resolver struct {
	source StreamSource
}

// NewResolver creates a new resolver backed by the given stream source
func NewResolver(source StreamSource) *Resolver {
	return &Resolver{source: source}
}

// Resolve fetches and decodes the stream URL for one track/quality pair.
// Transport failures and decode failures alike surface as an error; the
// caller treats either as "no stream for this tier".
func (r *Resolver) Resolve(trackID, quality string) (*models.MediaURL, error) {
	data, err := r.source.GetStreamData(trackID, quality, trackFormat)
	if err != nil {
		return nil, err
	}

	streamURL, err := decoder.Decode(data.StreamPath)
	if err != nil {
		return nil, err
	}

	bitRate := data.BitRate
	if bitRate == "" {
		bitRate = models.QualityRates[quality]
	}
	format := data.TrackFormat
	if format == "" {
		format = trackFormat
	}

	return &models.MediaURL{
		Quality: quality,
		BitRate: bitRate,
		URL:     streamURL,
		Format:  format,
	}, nil
}

// ResolveAll resolves the available stream URLs for a track. Only the
// highest tier is attempted; a failure there is logged and yields an empty
// result rather than falling back to lower tiers.
func (r *Resolver) ResolveAll(trackID string) []*models.MediaURL {
	quality := models.QualityTiers[0]

	media, err := r.Resolve(trackID, quality)
	if err != nil {
		logger.GetLogger().WithError(err).WithField("track_id", trackID).
			WithField("quality", quality).Warn("No stream for quality tier")
		return nil
	}

	return []*models.MediaURL{media}
}
