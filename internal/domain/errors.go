// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates an insert rejected by a uniqueness constraint.
var ErrConflict = errors.New("conflict: resource already exists")

// ErrValidation indicates malformed or incomplete input.
var ErrValidation = errors.New("validation failed")

// ErrInvalidCredentials indicates the identity gateway rejected the
// email/password pair. Deliberately indistinguishable from "no such email".
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNoAccess indicates an authenticated principal with no usable
// (tenant, module) context: no memberships, or no enabled modules.
var ErrNoAccess = errors.New("no access")

// ErrInvalidContext indicates a context switch to a (tenant, module) pair
// outside the session's resolved access set.
var ErrInvalidContext = errors.New("invalid context")

// ErrNoContextSelected indicates a tenant-scoped operation was attempted
// before a context was selected.
var ErrNoContextSelected = errors.New("no context selected")

// ErrInvalidStatus indicates a tenant status outside {active, suspended, archived}.
var ErrInvalidStatus = errors.New("invalid status")

// ErrLicenseInactive indicates a state-changing operation was blocked
// because the tenant's license is suspended or archived.
var ErrLicenseInactive = errors.New("tenant license is not active")

// ErrResolutionFailed indicates the access set could not be computed because
// of an infrastructure failure. Absence of a definitive allow is a deny.
var ErrResolutionFailed = errors.New("access resolution failed")

// ErrProvisioningFailed indicates tenant provisioning aborted; compensation
// has already been applied before this error surfaces.
var ErrProvisioningFailed = errors.New("provisioning failed")
