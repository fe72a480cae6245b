package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-apps/auth"
	"github.com/goliatone/go-apps/core"
)

type credentialOutput struct {
	Kind                string `json:"kind"`
	ProjectID           string `json:"project_id,omitempty"`
	ServiceAccountEmail string `json:"service_account_email,omitempty"`
	ClientID            string `json:"client_id,omitempty"`
}

func newValidateCredentialCmd(_ *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-credential <path>",
		Short: "Check a service account or authorized user file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cred, err := auth.NewFromFile(args[0])
			if err != nil {
				return err
			}
			if _, err := core.ValidateCredential(cred); err != nil {
				return err
			}

			out := credentialOutput{Kind: cred.Kind()}
			if provider, ok := cred.(core.ProjectIDProvider); ok {
				out.ProjectID = provider.ProjectID()
			}
			switch typed := cred.(type) {
			case *auth.Certificate:
				out.ServiceAccountEmail = typed.ServiceAccountEmail()
			case *auth.RefreshToken:
				out.ClientID = typed.ClientID()
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}
