package main

import (
	"github.com/spf13/cobra"

	apps "github.com/goliatone/go-apps"
	"github.com/goliatone/go-apps/auth"
)

type resolveOutput struct {
	Name           string         `json:"name"`
	ProjectID      string         `json:"project_id"`
	CredentialKind string         `json:"credential_kind"`
	Options        map[string]any `json:"options"`
}

func newResolveCmd(flags *rootFlags) *cobra.Command {
	var (
		appName        string
		credentialPath string
	)
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the options and project id an app would be created with.",
		Long: `
Usage: apps-config resolve [options]

  Creates an app without explicit options, so options come from the config
  env var (FIREBASE_CONFIG by default), and prints what it resolved to.
  Secret-looking option values are redacted.

      $ apps-config resolve --credential service-account.json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := flags.environment()
			if err != nil {
				return err
			}
			registry, err := apps.NewRegistry(apps.DefaultConfig(),
				apps.WithEnvironment(env),
				apps.WithLogger(flags.logger()),
			)
			if err != nil {
				return err
			}

			var cred apps.Credential
			if credentialPath != "" {
				if cred, err = auth.NewFromFile(credentialPath); err != nil {
					return err
				}
			}
			var appOpts []apps.AppOption
			if appName != "" {
				appOpts = append(appOpts, apps.WithAppName(appName))
			}

			ctx := cmd.Context()
			app, err := registry.Create(ctx, cred, nil, appOpts...)
			if err != nil {
				return err
			}
			defer registry.Reset(ctx)

			return writeJSON(cmd.OutOrStdout(), resolveOutput{
				Name:           app.Name(),
				ProjectID:      app.ProjectID(),
				CredentialKind: app.Credential().Kind(),
				Options:        apps.RedactOptions(app.Options()),
			})
		},
	}
	cmd.Flags().StringVar(&appName, "name", "", "App name (defaults to the default app name)")
	cmd.Flags().StringVar(&credentialPath, "credential", "", "Credential file; application default credentials when empty")
	return cmd
}
