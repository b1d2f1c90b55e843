package constants

// Permissions carried in the identity provider's JWT.
const (
	PermAdminFull = "meetly.admin.full-permit"
	PermHostFull  = "meetly.host.full-permit"

	// Special permissions
	PermAny = "any"
)
