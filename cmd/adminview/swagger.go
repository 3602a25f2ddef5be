package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-adminview/internal/config"
	"github.com/goliatone/go-adminview/pkg/app"
	"github.com/goliatone/go-adminview/pkg/swagger"
)

func newSwaggerCmd(flags *rootFlags) *cobra.Command {
	var (
		output  string
		title   string
		version string
	)

	cmd := &cobra.Command{
		Use:   "swagger",
		Short: "Write an OpenAPI document for the registered controllers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := swaggerConfig(flags)
			if err != nil {
				return err
			}
			a, err := app.Boot(context.Background(), cfg)
			if err != nil {
				return err
			}

			basePath := cfg.Server.BasePath
			if basePath == "" {
				basePath = app.DefaultBasePath
			}
			doc, err := swagger.Generate(swagger.Info{
				Title:    title,
				Version:  version,
				BasePath: basePath,
			}, a.Controllers().Controllers())
			if err != nil {
				return err
			}
			path, err := swagger.WriteFile(doc, output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d paths)\n", path, len(swagger.Paths(doc)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", swagger.DefaultOutput, "Output file")
	cmd.Flags().StringVar(&title, "title", "Admin API", "Document title")
	cmd.Flags().StringVar(&version, "api-version", "1.0.0", "Document version")
	return cmd
}

// swaggerConfig substitutes a placeholder secret when the environment has
// none, since generating the document never issues a token.
func swaggerConfig(flags *rootFlags) (*config.Config, error) {
	getenv := func(key string) string {
		v := os.Getenv(key)
		if v == "" && key == config.EnvJWTSecret {
			return "swagger-generation-only"
		}
		return v
	}
	return config.NewLoader(config.WithEnv(getenv)).Load(config.Sources(flags.configs...)...)
}
