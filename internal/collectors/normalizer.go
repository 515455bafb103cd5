package collectors

import (
	"fmt"
	"net"
	"strings"
	"time"

	"access-analytics/internal/models"
	"access-analytics/internal/shared/ulid"

	"github.com/mileusna/useragent"
)

const maxPathLen = 500

var allowedMethods = map[string]struct{}{
	"GET": {}, "HEAD": {}, "POST": {}, "PUT": {}, "PATCH": {}, "DELETE": {}, "OPTIONS": {},
}

//go:generate mockgen -source=normalizer.go -destination=./mocks/normalizer_mock.go -package=mocks
type Normalizer interface {
	// Normalize validates a raw event and fills the derived fields
	// (event id, device/browser classification, UTC timestamp). It performs
	// no I/O and never blocks.
	Normalize(raw *models.RawAccessEvent) (*models.AccessEvent, error)
}

type normalizer struct{}

func NewNormalizer() Normalizer {
	return &normalizer{}
}

func (n *normalizer) Normalize(raw *models.RawAccessEvent) (*models.AccessEvent, error) {
	remoteAddr := strings.TrimSpace(raw.RemoteAddr)
	if remoteAddr == "" {
		return nil, errValidationFailed("remoteAddr is required", nil)
	}
	if net.ParseIP(remoteAddr) == nil {
		return nil, errValidationFailed(fmt.Sprintf("remoteAddr %q is not a valid IP address", remoteAddr), nil)
	}

	path := strings.TrimSpace(raw.Path)
	if path == "" {
		return nil, errValidationFailed("path is required", nil)
	}
	if len(path) > maxPathLen {
		return nil, errValidationFailed(fmt.Sprintf("path too long: max %d characters", maxPathLen), nil)
	}

	method := strings.ToUpper(strings.TrimSpace(raw.Method))
	if _, ok := allowedMethods[method]; !ok {
		return nil, errValidationFailed(fmt.Sprintf("unsupported method %q", raw.Method), nil)
	}

	if raw.StatusCode < 100 || raw.StatusCode > 599 {
		return nil, errValidationFailed(fmt.Sprintf("statusCode %d out of range 100-599", raw.StatusCode), nil)
	}

	if raw.ResponseTimeMS < 0 {
		return nil, errValidationFailed("responseTimeMs must be non-negative", nil)
	}

	occurredAt := raw.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	ua := strings.TrimSpace(raw.UserAgent)
	deviceClass, browser := classifyUserAgent(ua)

	return &models.AccessEvent{
		EventID:        ulid.NewULID(),
		ActorID:        strings.TrimSpace(raw.ActorID),
		RemoteAddr:     remoteAddr,
		SessionID:      strings.TrimSpace(raw.SessionID),
		Path:           path,
		Method:         method,
		StatusCode:     raw.StatusCode,
		ResponseTimeMS: raw.ResponseTimeMS,
		UserAgent:      ua,
		DeviceClass:    deviceClass,
		Browser:        browser,
		Country:        normalizeCountry(raw.Country),
		OccurredAt:     occurredAt.UTC(),
	}, nil
}

// classifyUserAgent derives the device class and browser family. Bots win
// over device hints since crawler UAs often spoof mobile profiles.
func classifyUserAgent(ua string) (models.DeviceClass, string) {
	if ua == "" {
		return models.DeviceDesktop, ""
	}

	parsed := useragent.Parse(ua)

	class := models.DeviceDesktop
	switch {
	case parsed.Bot:
		class = models.DeviceBot
	case parsed.Tablet:
		class = models.DeviceTablet
	case parsed.Mobile:
		class = models.DeviceMobile
	}

	return class, parsed.Name
}

// normalizeCountry keeps the caller-supplied geo classification if it looks
// like an ISO 3166-1 alpha-2 code; anything else is discarded.
func normalizeCountry(country string) string {
	country = strings.ToUpper(strings.TrimSpace(country))
	if len(country) != 2 {
		return ""
	}
	for _, r := range country {
		if r < 'A' || r > 'Z' {
			return ""
		}
	}
	return country
}
