package bootstrap

import (
	"github.com/dmitrymomot/userflow-bootstrap/pkg/config"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/facade"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/loader"
)

// Config selects where builds are loaded from.
type Config struct {
	URLPrefix string `env:"USERFLOWJS_URL_PREFIX" envDefault:"https://js.userflow.com/"`
	loader.Overrides
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewFacade returns a facade that loads the build for userAgent with inj.
// A nil inj fetches the build over HTTP.
func NewFacade(userAgent string, cfg Config, inj loader.Injector, opts ...facade.Option) (*facade.Facade, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if inj == nil {
		inj = loader.NewHTTPInjector()
	}
	all := append([]facade.Option{
		facade.WithInjector(inj,
			loader.WithUserAgent(userAgent),
			loader.WithOverrides(cfg.Overrides),
			loader.WithURLPrefix(cfg.URLPrefix),
		),
	}, opts...)
	return facade.New(all...), nil
}

var global facade.Slot

// Install puts c in the process-wide slot unless a client is there already.
// It returns the client in the slot and whether c was installed.
func Install(c facade.Client) (facade.Client, bool) {
	return global.Install(func() facade.Client { return c })
}

// Default returns the client in the process-wide slot, nil if none.
func Default() facade.Client { return global.Get() }

// Attach replaces the process-wide client, typically the stub with the real
// implementation, and returns the previous one.
func Attach(c facade.Client) facade.Client { return global.Attach(c) }
