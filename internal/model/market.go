package model

import (
	"sort"
	"time"
)

// PriceSample is a single (timestamp, price) observation. Immutable once created.
type PriceSample struct {
	Time  time.Time
	Price float64
}

// PriceSeries holds price samples in ascending time order. A series always
// comes from a single source; samples from different sources are never merged.
type PriceSeries []PriceSample

// Prices returns the sample prices in series order.
func (s PriceSeries) Prices() []float64 {
	prices := make([]float64, len(s))
	for i, p := range s {
		prices[i] = p.Price
	}
	return prices
}

// SortByTime sorts the series ascending by timestamp in place.
func (s PriceSeries) SortByTime() {
	sort.Slice(s, func(i, j int) bool { return s[i].Time.Before(s[j].Time) })
}
