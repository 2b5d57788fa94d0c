// Package bootstrap installs the userflow client stand-in for a process.
//
// The real client is a script published in two builds, a modern es2020 one and
// a legacy one. The bootstrap picks the build for the host user agent, loads
// it at most once and meanwhile hands out a facade that records every call.
//
//	f, err := bootstrap.NewFacade(userAgent, cfg, nil)
//	if err != nil {
//		return err
//	}
//	client, _ := bootstrap.Install(f)
//	client.Invoke("init", "ct_xxx")
//
// Detection can be bypassed with USERFLOWJS_BROWSER_TARGET, and the build URLs
// replaced with USERFLOWJS_ES2020_URL and USERFLOWJS_LEGACY_URL.
//
// The subpackages are usable on their own:
//
//   - pkg/target classifies user agents into capability tiers.
//   - pkg/loader picks a build and injects it once.
//   - pkg/facade queues calls until the real client takes over.
//   - pkg/origin serves the builds and the tier decision over HTTP.
package bootstrap
