//go:build linux

package explorer

import "golang.org/x/sys/unix"

// rawMode holds the termios state needed to restore a terminal after a
// raw-mode session, following the Ioctl(Get|Set)Termios/TCGETS/TCSETS
// pattern for disabling canonical mode and echo.
type rawMode struct {
	fd       int
	original unix.Termios
}

func enableRawMode(fd int) (*rawMode, error) {
	orig, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, err
	}

	raw := *orig
	raw.Lflag &^= unix.ECHO | unix.ICANON
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return nil, err
	}
	return &rawMode{fd: fd, original: *orig}, nil
}

func (r *rawMode) restore() error {
	return unix.IoctlSetTermios(r.fd, unix.TCSETS, &r.original)
}
