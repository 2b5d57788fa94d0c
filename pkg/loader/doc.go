// Package loader fetches the deferred script exactly once.
//
// A Loader picks the script variant for the visiting browser, hands it to an
// Injector and exposes the outcome as an *async.Future. Whatever the number of
// callers, at most one injection is in flight:
//
//	not_started --Load--> in_flight --ok--> completed
//	                          |
//	                          +--error--> not_started
//
// While in flight or completed, Load returns the same future. A failed
// injection is removed again, the loader returns to not_started and the
// future is rejected with an error wrapping ErrLoadFailed, so a later call can
// retry. Nothing retries automatically and nothing times out here; the
// injector's own success or error is the only signal.
//
// # Variant selection
//
// Select decides the Script in this order:
//
//  1. Overrides.BrowserTarget forces the tier.
//  2. Overrides.ES2020URL or Overrides.LegacyURL forces the URL for the tier.
//  3. Otherwise the tier comes from classifying the user agent.
//  4. Otherwise the URL is {prefix}{tier}/userflow.js.
//
// The es2020 variant is flagged as a module script.
//
// # Usage
//
//	l := loader.New(loader.NewHTTPInjector(),
//	    loader.WithUserAgent(ua),
//	    loader.WithOverrides(overrides),
//	    loader.WithLogger(log),
//	)
//	if _, err := l.Load().AwaitContext(ctx); err != nil {
//	    // errors.Is(err, loader.ErrLoadFailed)
//	}
package loader
