package auth

import "bazaar/internal/auth/identity"

// Identity is the profile an external identity provider vouches for.
type Identity = identity.Identity

// IdentityVerifier checks a provider access token and returns the
// profile it belongs to. Token mechanics live entirely behind this
// interface; the services only consume verified identities.
type IdentityVerifier = identity.Verifier
