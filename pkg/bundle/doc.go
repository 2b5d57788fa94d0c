// Package bundle reads published script builds for serving.
//
// Builds are stored one directory per tier, for example es2020/userflow.js
// and legacy/userflow.js. LocalStore reads them from disk; S3Store reads them
// from an S3 bucket or an S3-compatible service.
//
//	store, err := bundle.NewS3Store(ctx, bundle.S3Config{
//		Bucket: "scripts",
//		Region: "eu-central-1",
//	})
//	rc, info, err := store.Open(ctx, target.ES2020, "userflow.js")
//
// Tier and file name are validated before any lookup; anything that is not a
// known tier and a single path element is rejected with ErrInvalidPath.
package bundle
