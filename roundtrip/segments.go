package roundtrip

import (
	"fmt"

	"go.jacobcolvin.com/yamldoc/keypath"
)

// segments records the key last seen at each depth. Only the prefix up to
// the current depth is ever read, so moving to a shallower line makes the
// deeper slots unreachable without clearing them.
//
// A line more than one level deeper than the previous mapping line reads the
// slots in between as they were last written, which may belong to an earlier
// branch. Such a path is still returned; [segments.skips] reports the jump.
type segments struct {
	buf  []string
	max  int
	last int
}

func newSegments(maxDepth int) *segments {
	return &segments{
		buf:  make([]string, 0, max(1, maxDepth/10)),
		max:  maxDepth,
		last: -1,
	}
}

// skips reports whether depth is more than one level below the previous
// mapping line.
func (s *segments) skips(depth int) bool {
	return depth > s.last+1
}

// check fails if depth is at or beyond the limit.
func (s *segments) check(depth int) error {
	if depth >= s.max {
		return fmt.Errorf("%w: depth %d, max %d", ErrDepthExceeded, depth, s.max)
	}

	return nil
}

// put stores key at depth and returns the path of that key.
func (s *segments) put(depth int, key string) (keypath.Path, error) {
	err := s.check(depth)
	if err != nil {
		return keypath.Root, err
	}

	if depth >= len(s.buf) {
		n := min(max(depth+1, (depth*7+3)/4+1), s.max)
		s.buf = append(s.buf, make([]string, n-len(s.buf))...)
	}

	s.buf[depth] = key
	s.last = depth

	return keypath.New(s.buf[:depth+1]...), nil
}
