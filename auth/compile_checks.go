package auth

import "github.com/goliatone/go-apps/core"

var (
	_ core.Credential          = (*Certificate)(nil)
	_ core.ProjectIDProvider   = (*Certificate)(nil)
	_ core.CredentialValidator = (*Certificate)(nil)

	_ core.Credential          = (*RefreshToken)(nil)
	_ core.CredentialValidator = (*RefreshToken)(nil)

	_ core.Credential        = (*ApplicationDefault)(nil)
	_ core.ProjectIDProvider = (*ApplicationDefault)(nil)

	_ core.Credential          = (*Static)(nil)
	_ core.ProjectIDProvider   = (*Static)(nil)
	_ core.CredentialValidator = (*Static)(nil)
)
