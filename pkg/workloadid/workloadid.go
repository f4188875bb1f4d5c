// Package workloadid names local socket callers with SPIFFE IDs built from
// the attributes their connection resolved to.
package workloadid

import (
	"errors"
	"fmt"

	"github.com/cofide/cofide-sdk-go/pkg/id"
	"github.com/cofide/peerid/pkg/peerauth"
	"github.com/cofide/peerid/pkg/peerid"
	"github.com/spiffe/go-spiffe/v2/spiffeid"
)

var ErrUnresolvedCaller = errors.New("caller identity is not resolved")

// ForCaller returns the SPIFFE ID of caller in trustDomain. The resolved
// value is recorded under "pid" or "uid" depending on what the platform
// reported, so IDs from different platforms never collide by accident.
func ForCaller(trustDomain string, caller peerauth.CallerInfo) (spiffeid.ID, error) {
	td, err := spiffeid.TrustDomainFromString(trustDomain)
	if err != nil {
		return spiffeid.ID{}, fmt.Errorf("invalid trust domain %q: %w", trustDomain, err)
	}

	if caller.Identity.Kind() != peerid.KindValue {
		return spiffeid.ID{}, fmt.Errorf("%w: %s", ErrUnresolvedCaller, caller.Identity)
	}

	info := map[string]string{
		caller.Source.String(): caller.Identity.String(),
	}
	if caller.BinaryName != "" { // empty when the caller's executable cannot be read
		info["bin"] = caller.BinaryName
	}

	sid, err := id.NewID(td.Name(), info)
	if err != nil {
		return spiffeid.ID{}, fmt.Errorf("failed to build SPIFFE ID: %w", err)
	}
	return sid.ToSpiffeID(), nil
}
