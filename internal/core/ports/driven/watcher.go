package driven

import "context"

// ChangeWatcher reports changes below a directory.
type ChangeWatcher interface {
	// Watch calls onChange with the path of every created, modified, removed
	// or renamed file under dir until ctx is cancelled.
	// It blocks and returns nil on cancellation.
	Watch(ctx context.Context, dir string, onChange func(path string)) error
}
