package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/facturio/backend/internal/infrastructure/config"
)

// PDFCacheFactory creates PDF caches based on configuration
type PDFCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// PDFCacheFactoryOption is a functional option for configuring the factory
type PDFCacheFactoryOption func(*PDFCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) PDFCacheFactoryOption {
	return func(f *PDFCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) PDFCacheFactoryOption {
	return func(f *PDFCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewPDFCacheFactory creates a new factory
func NewPDFCacheFactory(cfg config.RedisConfig, opts ...PDFCacheFactoryOption) *PDFCacheFactory {
	f := &PDFCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-based PDF cache
func (f *PDFCacheFactory) CreateRedisCache() (PDFCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	c, err := NewRedisPDFCache(redisCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis PDF cache: %w", err)
	}

	return c, nil
}

// CreateInMemoryCache creates an in-memory PDF cache
// This is suitable for single-instance deployments and testing
// WARNING: In-memory caches do not share state across process instances,
// so each instance renders its own copy of a document.
func (f *PDFCacheFactory) CreateInMemoryCache() PDFCache {
	return NewInMemoryPDFCache()
}

// CreateCache creates a PDF cache based on whether Redis is available
// It tries Redis first and falls back to in-memory if Redis is not available
// and AllowInMemoryFallback is true
func (f *PDFCacheFactory) CreateCache() (PDFCache, error) {
	c, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis PDF cache")
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for PDF cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory PDF cache",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
