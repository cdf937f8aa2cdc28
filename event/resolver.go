package event

// Resolver supplies the current organization id when the caller does not
// pass one explicitly. Implementations typically read request-scoped
// state (session, auth token); the publisher only calls Resolve
// synchronously and never reaches into framework state itself.
type Resolver interface {
	// Resolve returns the organization id, or ok=false when none is
	// available in the current context.
	Resolve() (id string, ok bool)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func() (string, bool)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve() (string, bool) {
	return f()
}

// FixedResolver returns a Resolver that always yields the given id.
func FixedResolver(id string) Resolver {
	return ResolverFunc(func() (string, bool) {
		return id, id != ""
	})
}
