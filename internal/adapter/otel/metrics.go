package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "academly"

// Metrics holds all Academly metric instruments.
type Metrics struct {
	LoginsSucceeded    metric.Int64Counter
	LoginsRejected     metric.Int64Counter
	ContextSwitches    metric.Int64Counter
	LicenseDenials     metric.Int64Counter
	TenantsProvisioned metric.Int64Counter
	ProvisioningFailed metric.Int64Counter
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.LoginsSucceeded, err = meter.Int64Counter("academly.logins.succeeded",
		metric.WithDescription("Number of successful logins"))
	if err != nil {
		return nil, err
	}

	m.LoginsRejected, err = meter.Int64Counter("academly.logins.rejected",
		metric.WithDescription("Number of rejected logins"))
	if err != nil {
		return nil, err
	}

	m.ContextSwitches, err = meter.Int64Counter("academly.context.switches",
		metric.WithDescription("Number of context selections"))
	if err != nil {
		return nil, err
	}

	m.LicenseDenials, err = meter.Int64Counter("academly.license.denials",
		metric.WithDescription("Operations blocked by tenant license status"))
	if err != nil {
		return nil, err
	}

	m.TenantsProvisioned, err = meter.Int64Counter("academly.tenants.provisioned",
		metric.WithDescription("Tenants created by provisioning"))
	if err != nil {
		return nil, err
	}

	m.ProvisioningFailed, err = meter.Int64Counter("academly.tenants.provisioning_failed",
		metric.WithDescription("Provisioning attempts aborted after compensation"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
