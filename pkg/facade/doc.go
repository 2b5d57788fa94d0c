// Package facade provides a stand-in client that records calls until the real
// client is loaded.
//
// Every method of the public surface is registered in one of three categories.
// Fire-and-forget methods are queued and return nothing. Deferred methods are
// queued with a handle and return a future. Sync-default methods answer at
// once with a fixed value, nil for GetResourceCenterState and false for
// IsIdentified, and are never queued.
//
// Any queued call also asks the loader to inject the script. The loader runs
// at most one injection at a time, so a burst of calls costs one load.
//
//	f := facade.New(facade.WithInjector(loader.NewHTTPInjector(), loader.WithUserAgent(ua)))
//	f.Init("ct_xxx")
//	done := f.Identify("user-1", facade.Attributes{"plan": "pro"}, nil)
//
// When the real client is ready it calls Handoff, which replays the queue in
// call order and settles every pending future from the real result. After
// that the facade forwards each call directly.
//
// A facade built without a loader is headless: it queues calls and never
// loads anything. Load then returns a future rejected with ErrHeadless.
//
// A failed load does not settle queued futures; they stay pending until a
// later load succeeds and the real client takes over.
package facade
