// Package origin serves the script builds and the build decision over HTTP.
//
// Routes:
//
//	GET /target         JSON decision for the request User-Agent, or ?ua=
//	GET /bootstrap.js   302 to the build URL for the request User-Agent
//	GET /{tier}/{file}  a build file from the configured bundle.Store
//	GET /health         liveness
//	GET /metrics        Prometheus metrics
//
// Pages that cannot run detection themselves can reference /bootstrap.js and
// let the origin pick the build. Responses that depend on the user agent carry
// Vary: User-Agent so shared caches keep them apart.
package origin
