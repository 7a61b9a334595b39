//go:build unix

package mmap

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func mapFile(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, unix.Munmap, nil
}

var madvice = [...]int{
	AdviceNormal:     unix.MADV_NORMAL,
	AdviceSequential: unix.MADV_SEQUENTIAL,
	AdviceWillNeed:   unix.MADV_WILLNEED,
}

func advise(data []byte, a Advice) error {
	if len(data) == 0 || int(a) >= len(madvice) {
		return nil
	}
	// EINVAL means an unaligned or unsupported range; the hint is optional.
	if err := unix.Madvise(data, madvice[a]); err != nil && !errors.Is(err, unix.EINVAL) {
		return err
	}
	return nil
}
