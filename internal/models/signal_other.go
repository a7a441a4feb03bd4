//go:build !unix

package models

import "syscall"

// signalName returns a description of sig.
func signalName(sig syscall.Signal) string {
	return sig.String()
}
