// Package adapter contains one DeliveryService implementation per supported
// carrier plus the plumbing they share. Every adapter follows the same shape:
// a fixed table maps the carrier's raw status vocabulary onto the canonical
// Status set, raw events become HistoryItems in the order the carrier
// reported them, and any carrier-side failure collapses into
// ports.ErrParcelNonExistent.
package adapter

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"

	"parcel-tracker/internal/core/logger"
	"parcel-tracker/internal/features/parcel/domain"
	"parcel-tracker/internal/features/parcel/ports"

	"go.uber.org/zap"
)

// fetchJSON executes req through client and decodes the JSON body into out.
// Transport-level failures (including context cancellation) map to
// ports.ErrNetwork; anything the carrier actually answered with, a non-2xx
// status or an undecodable body, maps to ports.ErrParcelNonExistent.
func fetchJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: carrier returned status %d", ports.ErrParcelNonExistent, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: undecodable carrier response: %v", ports.ErrParcelNonExistent, err)
	}

	return nil
}

// unknownStatus records an unrecognized top-level carrier status and degrades
// to StatusUnknown instead of failing the lookup. This is the extension point
// for spotting new carrier vocabulary in production logs.
func unknownStatus(carrier domain.Carrier, raw string) domain.Status {
	logger.Get().Warn("Unknown carrier status code encountered",
		zap.String("carrier", string(carrier)),
		zap.String("raw_status", raw),
	)
	return domain.StatusUnknown
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTML flattens markup some carriers embed in event descriptions,
// e.g. GLS wraps event text in <b> tags.
func stripHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(htmlTagPattern.ReplaceAllString(s, "")))
}
