package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/subdomains"
	"github.com/dmitrymomot/subdomains/pkg/logger"
	"github.com/dmitrymomot/subdomains/pkg/sites"
	"github.com/dmitrymomot/subdomains/pkg/urls"
)

// ErrNoRoutes is returned when the settings define no route tables.
var ErrNoRoutes = errors.New("server: settings define no routes")

// State is everything served for one version of the settings file.
type State struct {
	settings *subdomains.Settings
	cfg      *subdomains.Config
	registry *urls.Registry
	reverser *subdomains.Reverser
	site     sites.Registry
	handler  http.Handler
	log      *slog.Logger
}

// NewState builds the routers and reverser described by settings.
// Every route answers with a JSON page describing itself.
func NewState(settings *subdomains.Settings, site sites.Registry, log *slog.Logger) (*State, error) {
	if log == nil {
		log = logger.NewNope()
	}
	if len(settings.Routes) == 0 {
		return nil, ErrNoRoutes
	}

	st := &State{
		settings: settings,
		cfg:      settings.Config(),
		site:     site,
		log:      log,
	}

	confs, err := urls.Build(settings.Routes, st.page)
	if err != nil {
		return nil, err
	}

	defaultConf := settings.DefaultConf()
	st.registry = urls.NewRegistry(defaultConf, confs)
	st.reverser = subdomains.NewReverser(st.cfg, st.registry, site, subdomains.WithLogger(log))

	var fallback http.Handler
	if conf, ok := st.registry.Conf(""); ok {
		fallback = conf
	} else if defaultConf != "" {
		return nil, fmt.Errorf("%w: default urlconf %q is not defined", subdomains.ErrInvalidSettings, defaultConf)
	}

	router := subdomains.NewRouter(st.cfg, st.registry.Handlers(), fallback)
	st.handler = subdomains.Middleware(site, log)(router)
	return st, nil
}

// Settings returns the settings the state was built from.
func (st *State) Settings() *subdomains.Settings {
	return st.settings
}

// Reverser returns the reverser for this state.
func (st *State) Reverser() *subdomains.Reverser {
	return st.reverser
}

// Registry returns the route registry for this state.
func (st *State) Registry() *urls.Registry {
	return st.registry
}

func (st *State) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	st.handler.ServeHTTP(w, r)
}

// CheckSite is a readiness check that the site domain can be loaded.
func (st *State) CheckSite(ctx context.Context) error {
	_, err := st.site.CurrentDomain(ctx)
	return err
}
