//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package system

import (
	"bytes"

	"golang.org/x/sys/unix"
)

// uname returns the kernel release, version, and machine name.
func uname() map[string]string {
	var u unix.Utsname
	if unix.Uname(&u) != nil {
		// If uname failed, we don't have anything else to try.
		return nil
	}
	return map[string]string{
		"release": string(bytes.TrimRight(u.Release[:], "\x00")),
		"version": string(bytes.TrimRight(u.Version[:], "\x00")),
		"machine": string(bytes.TrimRight(u.Machine[:], "\x00")),
	}
}
