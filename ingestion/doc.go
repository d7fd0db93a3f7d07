// Package ingestion runs similarity searches for batches of contracts.
//
// A Pipeline takes a list of Documents and searches for each of them on an
// ants worker pool, collecting one Outcome per document in input order:
//
//	pipeline, err := ingestion.NewPipeline(searcher, ingestion.WithPoolSize(2))
//	if err != nil {
//	    return err
//	}
//	defer pipeline.Release()
//
//	outcomes, err := pipeline.Run(ctx, docs)
//
// Failures are reported per document and never abort the batch. A
// ProgressTracker can print a running status line while the batch runs.
package ingestion
