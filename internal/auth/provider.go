package auth

import "fintrack/internal/core"

// ExternalIdentity is what an identity provider asserts about a user after
// its own handshake. The handshake itself lives outside this package; only
// the resulting claim crosses this boundary.
type ExternalIdentity struct {
	Provider    core.AccountKind
	ExternalID  string
	Username    string
	Email       string
	DisplayName string
}

func (id ExternalIdentity) validate() error {
	switch id.Provider {
	case core.AccountGoogle, core.AccountFacebook:
	default:
		return core.Validationf("unsupported identity provider %q", id.Provider)
	}
	if id.ExternalID == "" {
		return core.Validationf("external identity is missing a subject id")
	}
	return nil
}

// IdentityProvider turns a provider-specific credential, such as an OAuth
// authorization code, into an asserted identity.
type IdentityProvider interface {
	Resolve(credential string) (ExternalIdentity, error)
}
