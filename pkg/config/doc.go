// Package config loads typed configuration from environment variables.
//
// Structs describe their variables with github.com/caarlos0/env tags. Load
// parses each struct type once per process and serves later calls from a
// cache, so packages can ask for their configuration wherever they need it
// without re-reading the environment:
//
//	type OriginConfig struct {
//		BundleDir string `env:"ORIGIN_BUNDLE_DIR" envDefault:"./dist"`
//		CacheSize int    `env:"ORIGIN_CLASSIFIER_CACHE" envDefault:"4096"`
//	}
//
//	var cfg OriginConfig
//	config.MustLoad(&cfg)
//
// A .env file in the working directory is loaded with github.com/joho/godotenv
// before the first Load; LoadEnv loads other files explicitly.
//
// Parse is the uncached variant. WithValues lets it read from a plain map,
// which is how script override settings supplied by an embedder are turned
// into a typed struct.
//
// # Errors
//
// Parsing failures wrap ErrParsingConfig and can be matched with errors.Is.
// A failed Load is not cached, so a later call can succeed.
package config
