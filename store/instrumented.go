package store

import "skysage.app/metrics"

// InstrumentedStore decorates a Store with Prometheus write counters.
type InstrumentedStore struct {
	inner Store
}

// NewInstrumentedStore wraps inner with per-key write metrics.
func NewInstrumentedStore(inner Store) *InstrumentedStore {
	return &InstrumentedStore{inner: inner}
}

func (s *InstrumentedStore) Get(key string) (string, bool) {
	return s.inner.Get(key)
}

func (s *InstrumentedStore) Set(key, value string) error {
	err := s.inner.Set(key, value)
	metrics.RecordStoreWrite(key, err)
	return err
}
