//go:build !windows

package fsinfo

import (
	"errors"
	"io/fs"
	"syscall"
)

// fillIdentity copies device, inode and link count out of syscall.Stat_t
func fillIdentity(id *Identity, info fs.FileInfo) error {
	sys, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return errors.New("failed to get syscall.Stat_t")
	}
	id.Dev = uint64(sys.Dev)
	id.Ino = uint64(sys.Ino)
	id.Nlink = uint64(sys.Nlink)
	return nil
}
