package facade

import (
	"fmt"
	"slices"
)

// Category decides how a stub answers before the real client is attached.
type Category int

const (
	// FireAndForget methods are queued and return nothing.
	FireAndForget Category = iota
	// Deferred methods are queued and return a future that settles once
	// the real client has run them.
	Deferred
	// SyncDefault methods answer immediately with a fixed value and are
	// never queued.
	SyncDefault
)

func (c Category) String() string {
	switch c {
	case FireAndForget:
		return "fire_and_forget"
	case Deferred:
		return "deferred"
	case SyncDefault:
		return "sync_default"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Method describes one entry of the public surface.
type Method struct {
	Name     string
	Category Category
	// Default is what a SyncDefault stub returns. Ignored otherwise.
	Default any
}

// Registry is the fixed set of methods a facade exposes.
type Registry struct {
	byName map[string]Method
	order  []string
}

// NewRegistry builds a registry. Names must be unique.
func NewRegistry(methods ...Method) (*Registry, error) {
	r := &Registry{byName: make(map[string]Method, len(methods))}
	for _, m := range methods {
		if _, dup := r.byName[m.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMethod, m.Name)
		}
		r.byName[m.Name] = m
		r.order = append(r.order, m.Name)
	}
	return r, nil
}

// Lookup returns the method registered under name.
func (r *Registry) Lookup(name string) (Method, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// Methods returns every method in registration order.
func (r *Registry) Methods() []Method {
	out := make([]Method, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Names returns the names of all methods in category c, sorted.
func (r *Registry) Names(c Category) []string {
	var out []string
	for _, name := range r.order {
		if r.byName[name].Category == c {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// Method names of the public surface.
const (
	MethodSetTargetEnv                    = "_setTargetEnv"
	MethodCloseResourceCenter             = "closeResourceCenter"
	MethodDisableEvalJs                   = "disableEvalJs"
	MethodInit                            = "init"
	MethodOff                             = "off"
	MethodOn                              = "on"
	MethodPrepareAudio                    = "prepareAudio"
	MethodRegisterCustomInput             = "registerCustomInput"
	MethodRemount                         = "remount"
	MethodReset                           = "reset"
	MethodSetBaseZIndex                   = "setBaseZIndex"
	MethodSetCustomInputSelector          = "setCustomInputSelector"
	MethodSetCustomNavigate               = "setCustomNavigate"
	MethodSetCustomScrollIntoView         = "setCustomScrollIntoView"
	MethodSetInferenceAttributeFilter     = "setInferenceAttributeFilter"
	MethodSetInferenceAttributeNames      = "setInferenceAttributeNames"
	MethodSetInferenceClassNameFilter     = "setInferenceClassNameFilter"
	MethodSetResourceCenterLauncherHidden = "setResourceCenterLauncherHidden"
	MethodSetScrollPadding                = "setScrollPadding"
	MethodSetServerEndpoint               = "setServerEndpoint"
	MethodSetShadowDomEnabled             = "setShadowDomEnabled"
	MethodSetPageTrackingDisabled         = "setPageTrackingDisabled"
	MethodSetURLFilter                    = "setUrlFilter"
	MethodSetLinkURLDecorator             = "setLinkUrlDecorator"
	MethodOpenResourceCenter              = "openResourceCenter"
	MethodToggleResourceCenter            = "toggleResourceCenter"

	MethodEndAll            = "endAll"
	MethodEndAllFlows       = "endAllFlows"
	MethodEndChecklist      = "endChecklist"
	MethodGroup             = "group"
	MethodIdentify          = "identify"
	MethodIdentifyAnonymous = "identifyAnonymous"
	MethodStart             = "start"
	MethodStartFlow         = "startFlow"
	MethodStartWalk         = "startWalk"
	MethodTrack             = "track"
	MethodUpdateGroup       = "updateGroup"
	MethodUpdateUser        = "updateUser"

	MethodGetResourceCenterState = "getResourceCenterState"
	MethodIsIdentified           = "isIdentified"
)

var defaultRegistry = mustRegistry(
	fire(MethodSetTargetEnv),
	fire(MethodCloseResourceCenter),
	fire(MethodDisableEvalJs),
	fire(MethodInit),
	fire(MethodOff),
	fire(MethodOn),
	fire(MethodPrepareAudio),
	fire(MethodRegisterCustomInput),
	fire(MethodRemount),
	fire(MethodReset),
	fire(MethodSetBaseZIndex),
	fire(MethodSetCustomInputSelector),
	fire(MethodSetCustomNavigate),
	fire(MethodSetCustomScrollIntoView),
	fire(MethodSetInferenceAttributeFilter),
	fire(MethodSetInferenceAttributeNames),
	fire(MethodSetInferenceClassNameFilter),
	fire(MethodSetResourceCenterLauncherHidden),
	fire(MethodSetScrollPadding),
	fire(MethodSetServerEndpoint),
	fire(MethodSetShadowDomEnabled),
	fire(MethodSetPageTrackingDisabled),
	fire(MethodSetURLFilter),
	fire(MethodSetLinkURLDecorator),
	fire(MethodOpenResourceCenter),
	fire(MethodToggleResourceCenter),

	deferred(MethodEndAll),
	deferred(MethodEndAllFlows),
	deferred(MethodEndChecklist),
	deferred(MethodGroup),
	deferred(MethodIdentify),
	deferred(MethodIdentifyAnonymous),
	deferred(MethodStart),
	deferred(MethodStartFlow),
	deferred(MethodStartWalk),
	deferred(MethodTrack),
	deferred(MethodUpdateGroup),
	deferred(MethodUpdateUser),

	Method{Name: MethodGetResourceCenterState, Category: SyncDefault, Default: (*ResourceCenterState)(nil)},
	Method{Name: MethodIsIdentified, Category: SyncDefault, Default: false},
)

// DefaultRegistry returns the registry of the full public surface.
func DefaultRegistry() *Registry { return defaultRegistry }

func fire(name string) Method     { return Method{Name: name, Category: FireAndForget} }
func deferred(name string) Method { return Method{Name: name, Category: Deferred} }

func mustRegistry(methods ...Method) *Registry {
	r, err := NewRegistry(methods...)
	if err != nil {
		panic(err)
	}
	return r
}
