//go:build !linux

package explorer

// rawMode is a no-op off Linux: the explorer falls back to line-buffered
// input, which is always correct, just not single-keystroke.
type rawMode struct{}

func enableRawMode(fd int) (*rawMode, error) { return nil, nil }

func (r *rawMode) restore() error { return nil }
