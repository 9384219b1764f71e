package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckNotConfigured indicates a missing credential.
	CheckNotConfigured CheckResult = "not_configured"
	// CheckSkipped indicates a configured component that was not probed.
	CheckSkipped CheckResult = "skipped"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	provider ProviderChecker
	probe    bool
}

// New creates a Service. provider is nil when no credential is configured.
// With probe unset the provider is only checked for presence.
func New(provider ProviderChecker, probe bool) *Service {
	return &Service{provider: provider, probe: probe}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	switch {
	case s.provider == nil:
		checks["provider"] = CheckNotConfigured
	case !s.probe:
		checks["provider"] = CheckSkipped
	default:
		if err := s.provider.HealthCheck(ctx); err != nil {
			checks["provider"] = CheckError
		} else {
			checks["provider"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError || v == CheckNotConfigured {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
