package identity

// Method indicates how the caller was identified.
type Method string

const (
	MethodAnonymous Method = "anonymous"
	MethodBearer    Method = "bearer"
)

// Identity is the resolved caller of a request.
type Identity struct {
	// Principal is the authenticated user id. Empty for anonymous
	// callers.
	Principal string

	// Method indicates how the identity was established.
	Method Method
}

// IsAnonymous returns true when no authenticated principal is known.
func (id *Identity) IsAnonymous() bool {
	return id == nil || id.Method == MethodAnonymous || id.Principal == ""
}

// Anonymous creates the default anonymous identity.
func Anonymous() *Identity {
	return &Identity{Method: MethodAnonymous}
}
