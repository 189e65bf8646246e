package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/etapi-go/etapi.go/pkg/constants"
)

// DepthOp selects how Depth.N bounds the distance from the ancestor.
type DepthOp int

const (
	DepthLessThan DepthOp = iota + 1
	DepthExactly
	DepthGreaterThan
)

var depthOpTokens = map[DepthOp]string{
	DepthLessThan:    "lt",
	DepthExactly:     "eq",
	DepthGreaterThan: "gt",
}

// Depth is one of less-than(n), exactly(n) or greater-than(n).
type Depth struct {
	Op DepthOp
	N  uint
}

func LessThan(n uint) *Depth {
	return &Depth{Op: DepthLessThan, N: n}
}

func Exactly(n uint) *Depth {
	return &Depth{Op: DepthExactly, N: n}
}

func GreaterThan(n uint) *Depth {
	return &Depth{Op: DepthGreaterThan, N: n}
}

// ParseDepth reads the wire form, e.g. "lt3".
func ParseDepth(s string) (*Depth, error) {
	if len(s) < 3 {
		return nil, fmt.Errorf("%w: ancestor depth %q", constants.ErrUnknownToken, s)
	}
	for op, token := range depthOpTokens {
		if !strings.HasPrefix(s, token) {
			continue
		}
		n, err := strconv.ParseUint(s[len(token):], 10, 0)
		if err != nil {
			return nil, fmt.Errorf("ancestor depth %q: %w", s, err)
		}
		return &Depth{Op: op, N: uint(n)}, nil
	}
	return nil, fmt.Errorf("%w: ancestor depth %q", constants.ErrUnknownToken, s)
}

// String returns the wire form: operator token followed by the bound.
func (d Depth) String() string {
	return depthOpTokens[d.Op] + strconv.FormatUint(uint64(d.N), 10)
}

func (d Depth) Validate() error {
	if _, ok := depthOpTokens[d.Op]; !ok {
		return fmt.Errorf("%w: depth operator %d", constants.ErrUnknownToken, int(d.Op))
	}
	return nil
}
