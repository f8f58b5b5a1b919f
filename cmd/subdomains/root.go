package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/subdomains"
	"github.com/dmitrymomot/subdomains/pkg/sites"
	"github.com/dmitrymomot/subdomains/pkg/urls"
)

const defaultSettingsPath = "subdomains.yaml"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "subdomains",
		Short:         "Subdomain-aware URL reversal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", defaultSettingsPath, "settings file")

	root.AddCommand(newReverseCmd(), newRoutesCmd(), newServeCmd())
	return root
}

// bundle is what the offline commands need from a settings file.
type bundle struct {
	settings *subdomains.Settings
	cfg      *subdomains.Config
	registry *urls.Registry
	reverser *subdomains.Reverser
}

// loadBundle reads the settings file and builds a reverser for domain,
// falling back to the domain from the settings.
func loadBundle(path, domain string) (*bundle, error) {
	s, err := subdomains.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	if domain == "" {
		domain = s.Domain
	}

	confs, err := urls.Build(s.Routes, func(string, string) http.Handler {
		return http.NotFoundHandler()
	})
	if err != nil {
		return nil, err
	}

	b := &bundle{
		settings: s,
		cfg:      s.Config(),
		registry: urls.NewRegistry(s.DefaultConf(), confs),
	}
	b.reverser = subdomains.NewReverser(b.cfg, b.registry, sites.Static(domain))
	return b, nil
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}
