package resilience

import "golang.org/x/sync/singleflight"

// SingleFlight collapses concurrent calls sharing a key into one execution.
type SingleFlight struct {
	group singleflight.Group
}

func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	return g.group.Do(key, fn)
}

// Forget drops an in-flight key so the next caller starts a fresh execution.
func (g *SingleFlight) Forget(key string) {
	g.group.Forget(key)
}
