package ratelimit

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sdejongh/mergeln/pkg/storage"
)

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

// drain empties the bucket
func drain(l *Limiter) {
	l.bucket.AllowN(time.Now(), l.bucketSize())
}

func TestNewLimiter(t *testing.T) {
	t.Run("ZeroIsUnlimited", func(t *testing.T) {
		if NewLimiter(0) != nil {
			t.Error("NewLimiter(0) should return nil")
		}
		if NewLimiter(-1) != nil {
			t.Error("NewLimiter(-1) should return nil")
		}
	})

	t.Run("SmallRateUsesMinimumBucket", func(t *testing.T) {
		limiter := NewLimiter(1000)
		if limiter.bucketSize() != minBucketSize {
			t.Errorf("bucketSize() = %d, want %d", limiter.bucketSize(), minBucketSize)
		}
		if tokens := limiter.bucket.Tokens(); tokens < minBucketSize-1 {
			t.Errorf("tokens = %v, want a full bucket", tokens)
		}
	})

	t.Run("LargeRateBucketIsOneSecond", func(t *testing.T) {
		limiter := NewLimiter(100 << 20)
		if limiter.bucketSize() != 100<<20 {
			t.Errorf("bucketSize() = %d, want %d", limiter.bucketSize(), 100<<20)
		}
		if limiter.BytesPerSecond() != 100<<20 {
			t.Errorf("BytesPerSecond() = %d", limiter.BytesPerSecond())
		}
	})
}

func TestReadCloser(t *testing.T) {
	t.Run("NilLimiterReturnsOriginal", func(t *testing.T) {
		src := &closeTracker{Reader: strings.NewReader("x")}
		if got := NewReadCloser(context.Background(), src, nil); got != io.ReadCloser(src) {
			t.Error("NewReadCloser with nil limiter should return the original")
		}
	})

	t.Run("ReadsAllContent", func(t *testing.T) {
		content := strings.Repeat("abcdef", 1000)
		src := &closeTracker{Reader: strings.NewReader(content)}
		rc := NewReadCloser(context.Background(), src, NewLimiter(10<<20))

		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if string(data) != content {
			t.Error("content mismatch")
		}
		if err := rc.Close(); err != nil || !src.closed {
			t.Error("Close() should close the wrapped reader")
		}
	})

	t.Run("ReadCappedAtBucket", func(t *testing.T) {
		src := &closeTracker{Reader: bytes.NewReader(make([]byte, 4*minBucketSize))}
		rc := NewReadCloser(context.Background(), src, NewLimiter(1))

		buf := make([]byte, 2*minBucketSize)
		n, err := rc.Read(buf)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if n > minBucketSize {
			t.Errorf("Read() = %d bytes, want at most %d", n, minBucketSize)
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		limiter := NewLimiter(1000)
		drain(limiter)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		src := &closeTracker{Reader: strings.NewReader("data")}
		rc := NewReadCloser(ctx, src, limiter)
		if _, err := rc.Read(make([]byte, 4)); !errors.Is(err, context.Canceled) {
			t.Errorf("Read() error = %v, want context.Canceled", err)
		}
	})

	t.Run("EmptyBucketWaits", func(t *testing.T) {
		limiter := NewLimiter(minBucketSize)
		drain(limiter)

		src := &closeTracker{Reader: bytes.NewReader(make([]byte, minBucketSize/8))}
		rc := NewReadCloser(context.Background(), src, limiter)

		start := time.Now()
		if _, err := io.ReadAll(rc); err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		// 8 KiB at 64 KiB/s needs about 125ms of refill
		if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
			t.Errorf("read finished in %v, expected throttling", elapsed)
		}
	})
}

func TestLimiterSharedBetweenReaders(t *testing.T) {
	limiter := NewLimiter(minBucketSize)

	first := NewReadCloser(context.Background(), &closeTracker{Reader: bytes.NewReader(make([]byte, minBucketSize))}, limiter)
	if _, err := io.ReadAll(first); err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if tokens := limiter.bucket.Tokens(); tokens > minBucketSize/2 {
		t.Errorf("tokens = %v after a full bucket was read, want most of it spent", tokens)
	}

	second := NewReadCloser(context.Background(), &closeTracker{Reader: bytes.NewReader(make([]byte, minBucketSize/8))}, limiter)
	start := time.Now()
	if _, err := io.ReadAll(second); err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("second reader finished in %v, expected it to wait for the shared bucket", elapsed)
	}
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"1024", 1024, false},
		{"512K", 512 << 10, false},
		{"50m", 50 << 20, false},
		{"1G", 1 << 30, false},
		{"10MB", 10 << 20, false},
		{"10MB/s", 10 << 20, false},
		{"fast", 0, true},
		{"-5M", 0, true},
		{"1.5M", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRate(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestBackend(t *testing.T) {
	local := storage.NewLocal()

	if NewBackend(local, nil) != storage.Backend(local) {
		t.Error("NewBackend with nil limiter should return the original backend")
	}

	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("throttled"), 0644); err != nil {
		t.Fatal(err)
	}

	backend := NewBackend(local, NewLimiter(1<<20))
	rc, err := backend.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	if _, ok := rc.(*ReadCloser); !ok {
		t.Errorf("Open() returned %T, want *ReadCloser", rc)
	}
	data, err := io.ReadAll(rc)
	if err != nil || string(data) != "throttled" {
		t.Errorf("ReadAll() = %q, %v", data, err)
	}

	if _, err := backend.Open(context.Background(), path+".missing"); err == nil {
		t.Error("Open() of a missing file should fail")
	}
}
