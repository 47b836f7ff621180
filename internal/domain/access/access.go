// Package access defines the resolved authorization contexts for a principal.
package access

// Context is one (tenant, module) pair a principal may operate within,
// derived from the cross product of their memberships and the enabled module
// activations of those tenants. Never persisted; recomputed at login.
type Context struct {
	TenantID   string `json:"tenant_id"`
	TenantName string `json:"tenant_name"`
	ModuleID   string `json:"module_id"`
	ModuleName string `json:"module_name"`
	Role       string `json:"role"`
}

// Classification is the Access Resolver's verdict for a principal.
// SuperAdmin and Contexts are mutually exclusive: a super-admin session
// never carries a context list.
type Classification struct {
	SuperAdmin bool
	Contexts   []Context
}

// Contains reports whether the exact (tenantID, moduleID) pair is an
// element of the context list.
func Contains(list []Context, tenantID, moduleID string) bool {
	for _, c := range list {
		if c.TenantID == tenantID && c.ModuleID == moduleID {
			return true
		}
	}
	return false
}
