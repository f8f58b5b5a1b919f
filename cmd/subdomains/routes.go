package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/subdomains"
)

func newRoutesCmd() *cobra.Command {
	var domain string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the routing table and every route URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := loadBundle(configPath(cmd), domain)
			if err != nil {
				return err
			}
			return printRoutes(cmd, b)
		},
	}
	cmd.Flags().StringVar(&domain, "domain", "", "site domain (default from settings)")
	return cmd
}

func printRoutes(cmd *cobra.Command, b *bundle) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "SUBDOMAIN\tURLCONF\tDEFAULT GROUP\tSCHEME")
	for _, sub := range b.cfg.Subdomains() {
		id, _ := b.cfg.URLConf(sub)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sub, id, yesNo(b.cfg.InDefaultGroup(sub)), orDash(b.cfg.SchemeFor(sub)))
	}
	fmt.Fprintf(w, "\ndefault subdomain: %s\ndefault urlconf: %s\n\n", b.cfg.DefaultSubdomain(), orDash(b.registry.Default()))

	fmt.Fprintln(w, "URLCONF\tROUTE\tPATTERN\tURL")
	for _, id := range b.registry.IDs() {
		conf, _ := b.registry.Conf(id)
		sub := representative(b.cfg, id, b.registry.Default())
		for _, name := range conf.Names() {
			pattern, _ := conf.Pattern(name)
			u := "-"
			if !strings.ContainsAny(pattern, "{*") {
				if rev, err := b.reverser.Reverse(cmd.Context(), name, subdomains.OnSubdomain(sub)); err == nil {
					u = rev
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, name, pattern, u)
		}
	}
	return w.Flush()
}

// representative picks the subdomain URLs of a configuration are shown on:
// the default subdomain if it maps there, else the first mapped subdomain.
func representative(cfg *subdomains.Config, confID, defaultConf string) subdomains.Subdomain {
	def := cfg.DefaultSubdomain()
	if id, ok := cfg.URLConf(def); ok && id == confID {
		return def
	}
	for _, sub := range cfg.Subdomains() {
		if id, _ := cfg.URLConf(sub); id == confID {
			return sub
		}
	}
	if confID == defaultConf {
		return def
	}
	return subdomains.None()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
