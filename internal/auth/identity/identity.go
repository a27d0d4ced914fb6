package identity

import "context"

// Identity is the profile an external identity provider vouches for.
type Identity struct {
	ID      string
	Email   string
	Name    string
	Picture *string
}

// Verifier checks a provider access token and returns the profile it
// belongs to. Token mechanics live entirely behind this interface; the
// services only consume verified identities.
type Verifier interface {
	Verify(ctx context.Context, accessToken string) (*Identity, error)
}
