package auth

// RequestClaims describes the authenticated caller of an API request.
type RequestClaims interface {
	KeyID() string
	Label() string
	IsAdmin() bool
	Source() string
}

// APIKeyClaims is the claims implementation for X-API-Key callers, the
// only authentication scheme the service accepts.
type APIKeyClaims struct {
	KeyIDValue string
	LabelValue string
	AdminValue bool
}

func (c *APIKeyClaims) KeyID() string  { return c.KeyIDValue }
func (c *APIKeyClaims) Label() string  { return c.LabelValue }
func (c *APIKeyClaims) IsAdmin() bool  { return c.AdminValue }
func (c *APIKeyClaims) Source() string { return "API_KEY" }
