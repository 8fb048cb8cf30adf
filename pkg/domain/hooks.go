package domain

import (
	"context"
	"time"
)

// CacheStatus records how a result cache took part in a calculation.
type CacheStatus string

const (
	CacheBypass CacheStatus = ""
	CacheHit    CacheStatus = "hit"
	CacheMiss   CacheStatus = "miss"
)

// CalculationEvent describes one pass through the calculator.
type CalculationEvent struct {
	Timestamp  time.Time     `json:"timestamp"`
	Input      string        `json:"input"`
	Expression *Expression   `json:"expression,omitempty"`
	Value      float64       `json:"value,omitempty"`
	Err        error         `json:"-"`
	Cache      CacheStatus   `json:"cache,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for calculator observability.
type LifecycleHooks struct {
	OnCalculated func(context.Context, *CalculationEvent)
	OnFailed     func(context.Context, *CalculationEvent)
}
