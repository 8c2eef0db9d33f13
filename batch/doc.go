// Package batch runs [docassoc.Engine] over many files in parallel.
//
// A [Runner] discovers source files, analyzes each with its own engine
// call on a bounded pool of goroutines, and collects a [Summary] tagged
// with a random run ID. Files that cannot be read or scanned are recorded
// as skipped instead of failing the run. Cancellation is observed between
// files.
//
//	cfg := batch.NewConfig()
//	cfg.RegisterFlags(cmd.Flags())
//
//	runner, err := cfg.NewRunner(engine, logger)
//	files, err := runner.Discover(args)
//	summary, err := runner.Run(ctx, files)
package batch
