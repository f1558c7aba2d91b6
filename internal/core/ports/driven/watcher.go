package driven

// ChangeEvent signals that a watched file changed on disk outside the
// editor.
type ChangeEvent struct {
	// Path is the changed file's path.
	Path string
}

// ChangeWatcher reports external modifications to files the editor has
// open, so their fingerprints can be re-verified.
type ChangeWatcher interface {
	// Watch begins watching a file path. Events arrive on the
	// channel returned by Events.
	Watch(path string) error

	// Events returns the channel carrying change events.
	Events() <-chan ChangeEvent

	// Close stops all watches and closes the events channel.
	Close() error
}
