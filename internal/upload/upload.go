// Package upload publishes the generated CSV tables, charts and snapshot
// database to remote storage.
package upload

import "context"

// Uploader pushes local output files to a remote destination.
type Uploader interface {
	// Preflight checks that the destination is writable before any work is done.
	Preflight(ctx context.Context) error
	// Upload sends each file under runID and returns the remote keys in input order.
	Upload(ctx context.Context, runID string, files []string) ([]string, error)
}
