// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run listens on Config.Addr, closes Ready once the listener is open and
// blocks until the context is canceled or SIGINT/SIGTERM arrives. Shutdown
// then waits up to Config.ShutdownTimeout for in-flight requests.
//
//	var cfg httpserver.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	return srv.Run(ctx, router)
//
// Listen errors are wrapped with ErrStart and shutdown errors with
// ErrShutdown.
package httpserver
