package compare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sdejongh/mergeln/pkg/storage"
)

const (
	// DefaultBufferSize is the chunk size used when none is configured
	DefaultBufferSize = 64 * 1024
	// MinBufferSize is the smallest chunk size accepted
	MinBufferSize = 4096
)

// BinaryComparator compares files byte-by-byte in lock-step chunks.
// It does not look at file sizes first, so it is correct on its own for
// files of different lengths.
type BinaryComparator struct {
	backend    storage.Backend
	bufferSize int
	bufferPool *sync.Pool
}

// NewBinaryComparator creates a new byte-by-byte comparator
func NewBinaryComparator(backend storage.Backend, bufferSize int) *BinaryComparator {
	if bufferSize < MinBufferSize {
		bufferSize = MinBufferSize
	}
	return &BinaryComparator{
		backend:    backend,
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// BufferSize returns the chunk size in bytes
func (c *BinaryComparator) BufferSize() int {
	return c.bufferSize
}

// Compare compares two files byte-by-byte
func (c *BinaryComparator) Compare(ctx context.Context, pathA, pathB string) (*Comparison, error) {
	readerA, err := c.backend.Open(ctx, pathA)
	if err != nil {
		return nil, err
	}
	defer readerA.Close()

	readerB, err := c.backend.Open(ctx, pathB)
	if err != nil {
		return nil, err
	}
	defer readerB.Close()

	bufPtrA := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(bufPtrA)
	bufA := *bufPtrA

	bufPtrB := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(bufPtrB)
	bufB := *bufPtrB

	var compared int64
	for {
		nA, errA := io.ReadFull(readerA, bufA)
		nB, errB := io.ReadFull(readerB, bufB)

		if errA = endOfFile(errA); errA != nil {
			return nil, fmt.Errorf("read %s: %w", pathA, errA)
		}
		if errB = endOfFile(errB); errB != nil {
			return nil, fmt.Errorf("read %s: %w", pathB, errB)
		}

		if nA != nB {
			return c.different(pathA, pathB, compared, shorterSide(pathA, pathB, nA, nB, compared)), nil
		}

		if !bytes.Equal(bufA[:nA], bufB[:nB]) {
			offset := compared
			for i := 0; i < nA; i++ {
				if bufA[i] != bufB[i] {
					offset += int64(i)
					break
				}
			}
			return c.different(pathA, pathB, compared+int64(nA),
				fmt.Sprintf("content differs at byte offset %d", offset)), nil
		}

		compared += int64(nA)

		// A short read means both files hit end-of-file at the same offset
		if nA < len(bufA) {
			return &Comparison{
				PathA:         pathA,
				PathB:         pathB,
				Equal:         true,
				Reason:        fmt.Sprintf("content matches (%d bytes)", compared),
				BytesCompared: compared,
			}, nil
		}
	}
}

// Name returns the comparator name
func (c *BinaryComparator) Name() string {
	return "binary"
}

func (c *BinaryComparator) different(pathA, pathB string, compared int64, reason string) *Comparison {
	return &Comparison{
		PathA:         pathA,
		PathB:         pathB,
		Equal:         false,
		Reason:        reason,
		BytesCompared: compared,
	}
}

// endOfFile maps the io.ReadFull end-of-stream errors to nil
func endOfFile(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil
	}
	return err
}

func shorterSide(pathA, pathB string, nA, nB int, compared int64) string {
	if nA < nB {
		return fmt.Sprintf("%s ended at %d but %s continues", pathA, compared+int64(nA), pathB)
	}
	return fmt.Sprintf("%s ended at %d but %s continues", pathB, compared+int64(nB), pathA)
}
