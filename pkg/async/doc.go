// Package async provides single-shot asynchronous results.
//
// A Future is the read side of a value that will be produced later. It settles
// exactly once, with either a value or an error, and any number of goroutines
// may wait on it with Await, AwaitContext or AwaitWithTimeout, or poll it with
// IsComplete.
//
// A Deferred is the matching write side. It is handed to the one party
// allowed to decide the outcome, which calls Resolve or Reject. The first call
// wins; later calls are ignored and report false. This is what lets the
// facade return an unsettled result immediately and leave settlement to the
// implementation that arrives later.
//
// # Usage
//
//	d := async.NewDeferred[struct{}]()
//	go func() {
//	    if err := work(); err != nil {
//	        d.Reject(err)
//	        return
//	    }
//	    d.Resolve(struct{}{})
//	}()
//	_, err := d.Future().AwaitContext(ctx)
//
// Async runs a function in its own goroutine and returns its future:
//
//	f := async.Async(ctx, url, fetch)
//	body, err := f.Await()
//
// # Error Handling
//
// Futures carry whatever error the producer supplied. AwaitWithTimeout
// returns ErrTimeout and AwaitContext returns ctx.Err() when the caller gives
// up; neither settles the future. Reject(nil) settles with ErrNilRejection.
package async
