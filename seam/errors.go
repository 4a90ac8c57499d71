package seam

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Errors
var (
	ErrTopology         = errors.New("topology error")
	ErrConsistency      = errors.New("consistency error")
	ErrToleranceMiss    = errors.New("no correspondence within tolerance")
	ErrIterationLimit   = errors.New("iteration limit exceeded")
	ErrUnsupportedKind  = errors.New("unsupported component kind")
	ErrBadMesh          = errors.New("bad mesh topology")
	ErrNilSnapshot      = errors.New("nil topology snapshot")
	ErrOverlappingUVs   = errors.New("mesh has overlapping uvs")
	ErrMissingUVs       = errors.New("mesh has face corners without uvs")
	ErrSingleShell      = errors.New("mesh has a single uv shell")
	ErrNotFlat          = errors.New("mesh is not uv flattened")
	ErrUnpairableBorder = errors.New("uv shells are not joined in 3d")
)

// TopologyError reports UV points whose border neighbourhood could not be resolved
// or that violate the two-neighbour invariant.
type TopologyError struct {
	Reason string
	UVs    []UVID
}

func (err *TopologyError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrTopology, err.Reason, formatIDs(err.UVs))
}

func (err *TopologyError) Unwrap() error { return ErrTopology }

// ConsistencyError reports a conflicting curve pair assignment or a lossy round trip.
type ConsistencyError struct {
	Reason   string
	Curves   []CurveID
	Expected int
	Got      int
}

func (err *ConsistencyError) Error() string {
	if len(err.Curves) > 0 {
		return fmt.Sprintf("%v: %s %s", ErrConsistency, err.Reason, formatIDs(err.Curves))
	}
	return fmt.Sprintf("%v: %s (expected %d, got %d)", ErrConsistency, err.Reason, err.Expected, err.Got)
}

func (err *ConsistencyError) Unwrap() error { return ErrConsistency }

// ToleranceMissError reports a mandatory re-find that had no candidate within tolerance.
type ToleranceMissError struct {
	UV        UVID
	Coord     r2.Point
	Distance  float64 // best squared distance found, +Inf when there were no candidates
	Tolerance float64
}

func (err *ToleranceMissError) Error() string {
	return fmt.Sprintf("%v: uv %d at (%g, %g), best %g, tolerance %g",
		ErrToleranceMiss, err.UV, err.Coord.X, err.Coord.Y, err.Distance, err.Tolerance)
}

func (err *ToleranceMissError) Unwrap() error { return ErrToleranceMiss }

// IterationLimitError reports a walk or loop search that ran past its step cap.
type IterationLimitError struct {
	Op    string
	Start UVID
	End   UVID
	Limit int
}

func (err *IterationLimitError) Error() string {
	return fmt.Sprintf("%v: %s from uv %d to uv %d after %d steps", ErrIterationLimit, err.Op, err.Start, err.End, err.Limit)
}

func (err *IterationLimitError) Unwrap() error { return ErrIterationLimit }

func formatIDs[T ~int32](ids []T) string {
	b := strings.Builder{}
	b.WriteByte('[')
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", id)
	}
	b.WriteByte(']')
	return b.String()
}
