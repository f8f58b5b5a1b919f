package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/subdomains"
)

func newReverseCmd() *cobra.Command {
	var (
		sub         string
		noSubdomain bool
		scheme      string
		relative    bool
		domain      string
		currentApp  string
		params      map[string]string
	)

	cmd := &cobra.Command{
		Use:   "reverse NAME [ARGS...]",
		Short: "Print the URL of a named route",
		Example: `  subdomains reverse home
  subdomains reverse --subdomain api user 42
  subdomains reverse --no-subdomain --scheme http article --param slug=intro`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBundle(configPath(cmd), domain)
			if err != nil {
				return err
			}

			choice := subdomains.Ambient()
			switch {
			case noSubdomain:
				choice = subdomains.NoSubdomain()
			case cmd.Flags().Changed("subdomain"):
				choice = subdomains.Explicit(sub)
			}

			opts := []subdomains.ReverseOption{
				subdomains.OnSubdomain(b.cfg.Select(nil, choice)),
				subdomains.WithArgs(args[1:]...),
				subdomains.WithCurrentApp(currentApp),
			}
			if len(params) > 0 {
				opts = append(opts, subdomains.WithParams(params))
			}
			if relative {
				opts = append(opts, subdomains.WithScheme(subdomains.Relative()))
			} else if cmd.Flags().Changed("scheme") {
				opts = append(opts, subdomains.WithScheme(subdomains.UseScheme(scheme)))
			}

			u, err := b.reverser.Reverse(cmd.Context(), args[0], opts...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), u)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&sub, "subdomain", "s", "", `subdomain to reverse on ("" stays in the default group)`)
	f.BoolVar(&noSubdomain, "no-subdomain", false, "reverse on the bare domain")
	f.StringVar(&scheme, "scheme", "", "URL scheme (default from settings)")
	f.BoolVar(&relative, "relative", false, "print a scheme-relative URL")
	f.StringVar(&domain, "domain", "", "site domain (default from settings)")
	f.StringVar(&currentApp, "current-app", "", "namespace tried first for unqualified names")
	f.StringToStringVarP(&params, "param", "p", nil, "named route parameter (key=value)")
	cmd.MarkFlagsMutuallyExclusive("subdomain", "no-subdomain")
	cmd.MarkFlagsMutuallyExclusive("scheme", "relative")
	return cmd
}
