package httpclient

import (
	"time"

	"travel-booking-service/config"

	circuit "github.com/rubyist/circuitbreaker"
)

// InitCircuitBreaker trips after the configured number of consecutive
// failures against the payment gateway.
func InitCircuitBreaker(cfg *config.HttpClientConfig) *circuit.Breaker {
	return circuit.NewThresholdBreaker(cfg.FailureThreshold)
}

// InitHttpClient wraps outbound calls in the breaker with a hard timeout.
// The gateway treats anything beyond single-digit seconds as abandoned, so
// a timed-out call is an unknown outcome, not a failure.
func InitHttpClient(cfg *config.HttpClientConfig, cb *circuit.Breaker) *circuit.HTTPClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return circuit.NewHTTPClientWithBreaker(cb, timeout, nil)
}
