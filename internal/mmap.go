package internal

import (
	"os"

	"golang.org/x/sys/unix"
)

// MapFile maps the named file read-only into memory and returns the
// mapped bytes. The caller must call Unmap when done with the data.
// Mapping an empty file returns a nil slice and no error.
func MapFile(name string) (data []byte, err error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := file.Close(); nerr != nil && err == nil {
			data = nil
			err = nerr
		}
	}()
	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() == 0 {
		return nil, nil
	}
	return unix.Mmap(int(file.Fd()), 0, int(stat.Size()), unix.PROT_READ, unix.MAP_SHARED)
}

// Unmap releases a mapping obtained from MapFile.
func Unmap(data []byte) error {
	if data == nil {
		return nil
	}
	return unix.Munmap(data)
}
