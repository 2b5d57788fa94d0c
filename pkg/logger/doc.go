// Package logger builds *slog.Logger instances with functional options.
//
// New picks a JSON or text handler and applies static attributes. Context
// extractors add attributes stored in a context.Context, a request ID for
// instance, to every record logged with that context.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "userflow-bootstrap"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.WarnContext(ctx, "could not load script bundle",
//	    logger.Tier(script.Tier), logger.URL(script.URL), logger.Error(err))
//
// Attribute helpers in attr.go keep key names consistent across packages.
// Discard returns a logger that drops everything; library components default
// to it so they stay silent unless the embedder supplies a logger.
package logger
