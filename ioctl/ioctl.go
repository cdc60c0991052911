// Copyright 2025 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Raw ioctl(2) invocation for illumos/Solaris targets.

package ioctl

import "syscall"

// SYS_ioctl from <sys/syscall.h>. The syscall package only exports SYS_IOCTL
// for Linux targets.
const sysIoctl = 54

// Ioctl executes an ioctl command on the specified file descriptor. A failed
// call returns the raw errno.
func Ioctl(fd, cmd, ptr uintptr) error {
	_, _, errno := syscall.Syscall(sysIoctl, fd, cmd, ptr)
	if errno != 0 {
		return errno
	}
	return nil
}
