package health

import "context"

// ProviderChecker checks generation provider availability.
type ProviderChecker interface {
	HealthCheck(ctx context.Context) error
}
