package protocol

import "context"

// Store is a key-value interface the surrounding cluster uses for
// start-time and service-discovery metadata (peer addresses, round
// epochs). It is never implemented inside this module: grounded on
// spectrum/src/config/inmem.rs's in-memory Store trait, it is supplemented
// here purely as the typed seam a real deployment's config backend
// (etcd, Consul, an in-memory map for tests) must satisfy.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	List(ctx context.Context, prefix string) (map[string]string, error)
}

// HealthChecker reports whether a worker/leader process is ready to
// accept traffic. Grounded on spectrum/src/services/health.rs; like
// Store, this is a collaborator-facing seam with no implementation in
// this module.
type HealthChecker interface {
	Healthy(ctx context.Context) error
}
