package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parcel-tracker/internal/core/cache"
	"parcel-tracker/internal/core/logger"
	"parcel-tracker/internal/features/parcel/domain"
	"parcel-tracker/internal/features/parcel/ports"

	"go.uber.org/zap"
)

// ErrCarrierNotSupported is returned when no adapter is registered for the
// requested carrier.
var ErrCarrierNotSupported = errors.New("carrier not supported")

// CarrierInfo describes a carrier's capabilities so clients can validate the
// add-parcel form before making a lookup.
type CarrierInfo struct {
	// Carrier is the carrier identifier.
	Carrier domain.Carrier `json:"carrier"`
	// Label is the human-readable carrier name.
	Label string `json:"label"`
	// AcceptsPostCode reports whether the carrier can use a postal code.
	AcceptsPostCode bool `json:"accepts_post_code"`
	// RequiresPostCode reports whether lookups fail without a postal code.
	RequiresPostCode bool `json:"requires_post_code"`
}

// ParcelService routes lookups to the right carrier adapter and caches
// successful results. The registry is closed: the adapter set is fixed at
// construction and kept 1:1 with the carrier enumeration.
type ParcelService struct {
	order    []domain.Carrier
	registry map[domain.Carrier]ports.DeliveryService
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewParcelService builds the registry from the given adapters, preserving
// their order for carrier detection. c may be nil to disable caching.
// A duplicate carrier registration is a wiring defect and fails construction.
func NewParcelService(services []ports.DeliveryService, c cache.Cache, cacheTTL time.Duration) (*ParcelService, error) {
	registry := make(map[domain.Carrier]ports.DeliveryService, len(services))
	order := make([]domain.Carrier, 0, len(services))

	for _, svc := range services {
		carrier := svc.Carrier()
		if _, dup := registry[carrier]; dup {
			return nil, fmt.Errorf("duplicate adapter registered for carrier %s", carrier)
		}
		registry[carrier] = svc
		order = append(order, carrier)
	}

	return &ParcelService{
		order:    order,
		registry: registry,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger.Get(),
	}, nil
}

// GetParcel resolves the carrier to its adapter and delegates the lookup.
// Postal code requirements are enforced before any I/O happens.
func (s *ParcelService) GetParcel(ctx context.Context, trackingID, postalCode string, carrier domain.Carrier) (*domain.Parcel, error) {
	svc, ok := s.registry[carrier]
	if !ok {
		return nil, ErrCarrierNotSupported
	}

	if svc.RequiresPostCode() && postalCode == "" {
		return nil, ports.ErrPostalCodeRequired
	}
	if !svc.AcceptsPostCode() {
		postalCode = ""
	}

	key := lookupKey(carrier, trackingID, postalCode)
	if parcel := s.fromCache(ctx, key); parcel != nil {
		return parcel, nil
	}

	parcel, err := svc.GetParcel(ctx, trackingID, postalCode)
	if err != nil {
		return nil, fmt.Errorf("lookup via %s failed: %w", carrier, err)
	}

	s.store(ctx, key, parcel)
	return parcel, nil
}

// DetectCarrier returns every carrier whose format matcher accepts the
// tracking ID, in registry order. Several generic formats overlap across
// carriers, so the result is a candidate list for the user to pick from,
// never an automatic choice. No network I/O happens here.
func (s *ParcelService) DetectCarrier(trackingID string) []domain.Carrier {
	var candidates []domain.Carrier
	for _, carrier := range s.order {
		if s.registry[carrier].AcceptsFormat(trackingID) {
			candidates = append(candidates, carrier)
		}
	}
	return candidates
}

// Carriers returns capability descriptions for every registered carrier, in
// registry order.
func (s *ParcelService) Carriers() []CarrierInfo {
	infos := make([]CarrierInfo, 0, len(s.order))
	for _, carrier := range s.order {
		svc := s.registry[carrier]
		infos = append(infos, CarrierInfo{
			Carrier:          carrier,
			Label:            carrier.Label(),
			AcceptsPostCode:  svc.AcceptsPostCode(),
			RequiresPostCode: svc.RequiresPostCode(),
		})
	}
	return infos
}

func lookupKey(carrier domain.Carrier, trackingID, postalCode string) string {
	return fmt.Sprintf("parcel:%s:%s:%s", carrier, trackingID, postalCode)
}

// fromCache returns the cached parcel for key, or nil on miss or any cache
// trouble. Cache failures degrade to a carrier lookup, never to an error.
func (s *ParcelService) fromCache(ctx context.Context, key string) *domain.Parcel {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Parcel cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	var parcel domain.Parcel
	if err := json.Unmarshal(raw, &parcel); err != nil {
		s.logger.Warn("Discarding corrupt parcel cache entry", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &parcel
}

func (s *ParcelService) store(ctx context.Context, key string, parcel *domain.Parcel) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(parcel)
	if err != nil {
		s.logger.Warn("Failed to encode parcel for cache", zap.String("key", key), zap.Error(err))
		return
	}

	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.logger.Warn("Parcel cache write failed", zap.String("key", key), zap.Error(err))
	}
}
