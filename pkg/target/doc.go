// Package target decides which build of the deferred script a browser can run.
//
// Classification is a pure function of the User-Agent string. It walks a
// fixed, ordered list of browser rules and stops at the first rule whose
// identity pattern matches. That rule alone decides the outcome: when its
// version pattern yields a number at or above the rule's minimum the browser
// gets the es2020 build, otherwise (including when no version is found) it
// gets the legacy build. Agents that match no rule are always legacy.
//
// Rule order matters. Embedding browsers advertise the engine they are built
// on, so Edge and Opera are tested before Chrome, and Chrome (desktop and iOS)
// before Safari.
//
// The policy is deliberately one-sided: a modern browser misclassified as
// legacy still works, while a legacy browser handed the es2020 build breaks.
// Runtime feature probing is not used because probes such as dynamic import
// can themselves fail under a restrictive Content-Security-Policy.
//
// # Usage
//
//	tier := target.Classify(r.UserAgent())
//	if tier == target.ES2020 {
//	    // serve the module build
//	}
//
// Servers classifying many requests can wrap a classifier in an LRU:
//
//	c := target.NewCachedClassifier(target.Default(), 4096)
//	tier := c.Classify(ua)
//
// # Error Handling
//
// Classification never fails. ParseTier returns ErrUnknownTier for override
// values that are not a known tier name.
package target
