package queries

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// TrackParcelReader is the lookup contract the cache decorates.
type TrackParcelReader interface {
	Handle(ctx context.Context, query TrackParcelQuery) (TrackParcelQueryResponse, error)
}

// CachedTrackParcelQueryHandler is a read-through cache in front of the
// public tracking lookup. Tracking pages are polled far more often than
// parcels change, so entries live until the TTL expires or a mutation
// invalidates them.
type CachedTrackParcelQueryHandler struct {
	inner TrackParcelReader
	cache *expirable.LRU[string, TrackParcelQueryResponse]
}

// NewCachedTrackParcelQueryHandler wraps the given reader with an expiring
// LRU of the given size and entry TTL.
func NewCachedTrackParcelQueryHandler(
	inner TrackParcelReader,
	size int,
	ttl time.Duration,
) *CachedTrackParcelQueryHandler {
	return &CachedTrackParcelQueryHandler{
		inner: inner,
		cache: expirable.NewLRU[string, TrackParcelQueryResponse](size, nil, ttl),
	}
}

// Handle returns the cached view when present, otherwise reads through and
// caches the result. Lookup failures are never cached.
func (h *CachedTrackParcelQueryHandler) Handle(
	ctx context.Context,
	query TrackParcelQuery,
) (TrackParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackParcelQueryResponse{}, err
	}

	key := query.TrackingID().String()
	if view, ok := h.cache.Get(key); ok {
		return view, nil
	}

	view, err := h.inner.Handle(ctx, query)
	if err != nil {
		return TrackParcelQueryResponse{}, err
	}

	h.cache.Add(key, view)
	return view, nil
}

// Invalidate drops the cached view for one tracking id. Called after any
// successful mutation of the corresponding parcel.
func (h *CachedTrackParcelQueryHandler) Invalidate(trackingID string) {
	h.cache.Remove(trackingID)
}
