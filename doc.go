// Package keyload implements a batching read-through cache over a remote
// key/value store. Concurrent per-key lookups are collapsed into one
// resolution pass: already-cached values are served from the store, the
// distinct missing keys go to a caller-supplied batch-fetch exactly once,
// and results are written back with a TTL. Keys the source confirms absent
// are cached as negative entries so the slow path is not re-hit for them.
//
// Components:
//   - store.Store: remote byte store with per-key TTL and an atomic
//     existence probe (Redis implementation included; single-key operations
//     only so sharded clusters stay safe).
//   - codec.Codec[V]: (de)serializes V <-> []byte.
//   - FetchFunc[K, V]: the fallback batch fetch; per key it yields a value,
//     a Missing result, or an error. Errors are never cached.
//   - batch.Group: optional coalescer turning concurrent Load calls into
//     one LoadMany pass per scheduling window.
//
// Keys:
//
//	<name>[:<suffix>]:<normalized-key>
//
// Loader names are claimed in a Registry at construction; two loaders may
// never share a namespace.
//
// Read-through pattern:
//
//	l, _ := keyload.New(keyload.Options[string, User]{
//	    Name:  "user",
//	    Store: rstore,
//	    Codec: codec.JSON[User]{},
//	    Fetch: func(ctx context.Context, ids []string) ([]keyload.Result[User], error) {
//	        return readUsersFromDB(ctx, ids) // Missing() for absent rows
//	    },
//	})
//	u, err := l.Load(ctx, "42")
package keyload
