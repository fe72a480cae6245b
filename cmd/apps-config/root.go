package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-apps/core"
	glog "github.com/goliatone/go-logger/glog"
)

type rootFlags struct {
	envFiles []string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "apps-config",
		SilenceUsage:  true,
		SilenceErrors: true,
		Short:         "Inspect how apps resolve options and credentials.",
		Long: `
Usage: apps-config <command> [options]

  Resolves app options and credentials the same way a registry does, using
  the process environment or variables loaded from dotenv files.

      $ apps-config resolve --env-file .env.staging
      $ apps-config validate-credential service-account.json
`,
	}
	root.PersistentFlags().StringSliceVar(&flags.envFiles, "env-file", nil, "Dotenv file(s) read before the process environment")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log registry operations")

	root.AddCommand(newResolveCmd(flags), newValidateCredentialCmd(flags))
	return root
}

// dotenvEnvironment serves variables from dotenv files before falling back
// to the process environment.
type dotenvEnvironment struct {
	values   core.MapEnvironment
	fallback core.Environment
}

func (e dotenvEnvironment) Lookup(key string) (string, bool) {
	if value, ok := e.values.Lookup(key); ok {
		return value, true
	}
	return e.fallback.Lookup(key)
}

func (f *rootFlags) environment() (core.Environment, error) {
	files := make([]string, 0, len(f.envFiles))
	for _, file := range f.envFiles {
		if trimmed := strings.TrimSpace(file); trimmed != "" {
			files = append(files, trimmed)
		}
	}
	if len(files) == 0 {
		return core.OSEnvironment{}, nil
	}
	values, err := godotenv.Read(files...)
	if err != nil {
		return nil, fmt.Errorf("load env files %v: %w", files, err)
	}
	return dotenvEnvironment{values: core.MapEnvironment(values), fallback: core.OSEnvironment{}}, nil
}

func (f *rootFlags) logger() glog.Logger {
	if f.verbose {
		_, logger := glog.Resolve("apps-config", nil, nil)
		return glog.Ensure(logger)
	}
	return glog.Nop()
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
