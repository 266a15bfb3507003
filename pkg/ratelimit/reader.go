// Package ratelimit throttles file reads with a token bucket shared by every
// reader it wraps.
package ratelimit

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

// minBucketSize keeps small limits from degrading into tiny reads
const minBucketSize = 65536

// Limiter controls the combined read rate of all readers sharing it
type Limiter struct {
	bytesPerSecond int64
	bucket         *rate.Limiter
}

// NewLimiter creates a limiter allowing bytesPerSecond with a one second burst.
// It returns nil, meaning unlimited, when bytesPerSecond <= 0.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	bucketSize := bytesPerSecond
	if bucketSize < minBucketSize {
		bucketSize = minBucketSize
	}

	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		bucket:         rate.NewLimiter(rate.Limit(bytesPerSecond), int(bucketSize)),
	}
}

// BytesPerSecond returns the configured rate
func (l *Limiter) BytesPerSecond() int64 {
	return l.bytesPerSecond
}

func (l *Limiter) bucketSize() int {
	return l.bucket.Burst()
}

// ReadCloser is an io.ReadCloser whose reads are paced by a Limiter
type ReadCloser struct {
	ctx     context.Context
	rc      io.ReadCloser
	limiter *Limiter
}

// NewReadCloser wraps rc. With a nil limiter rc is returned unchanged.
func NewReadCloser(ctx context.Context, rc io.ReadCloser, limiter *Limiter) io.ReadCloser {
	if limiter == nil {
		return rc
	}
	return &ReadCloser{ctx: ctx, rc: rc, limiter: limiter}
}

// Read implements io.Reader. A single call never reads more than one bucket.
func (r *ReadCloser) Read(p []byte) (int, error) {
	if len(p) > r.limiter.bucketSize() {
		p = p[:r.limiter.bucketSize()]
	}
	if len(p) == 0 {
		return r.rc.Read(p)
	}

	if err := r.limiter.bucket.WaitN(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.rc.Read(p)
}

// Close implements io.Closer
func (r *ReadCloser) Close() error {
	return r.rc.Close()
}

// ParseRate parses a rate such as "512K", "50M" or "1G" (powers of 1024)
// into bytes per second. An empty string or "0" means unlimited.
func ParseRate(s string) (int64, error) {
	orig := s
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return 0, nil
	}

	s = strings.TrimSuffix(strings.TrimSuffix(s, "/S"), "B")
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "K"):
		multiplier = 1 << 10
	case strings.HasSuffix(s, "M"):
		multiplier = 1 << 20
	case strings.HasSuffix(s, "G"):
		multiplier = 1 << 30
	}
	if multiplier > 1 {
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid rate %q (examples: 512K, 50M, 1G)", orig)
	}
	return n * multiplier, nil
}
