package topo

import (
	"github.com/fine-structures/seamtopo/seam"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// OverlappingUVs returns every UV id whose coordinate exactly repeats one of a lower UV id.
func (X *Snapshot) OverlappingUVs() seam.UVSet {
	seen := make(map[r2.Point]struct{}, len(X.uvs))
	out := make(seam.UVSet)
	for uv, pt := range X.uvs {
		if X.uvVtx[uv] < 0 {
			continue
		}
		if _, dupe := seen[pt]; dupe {
			out.Add(seam.UVID(uv))
		}
		seen[pt] = struct{}{}
	}
	return out
}

func (X *Snapshot) CheckOverlappingUVs() error {
	if overlap := X.OverlappingUVs(); overlap.Len() > 0 {
		return errors.Wrapf(seam.ErrOverlappingUVs, "%q uvs %v", X.name, overlap.Sorted())
	}
	return nil
}

func (X *Snapshot) CheckMissingUVs() error {
	var missing []seam.FaceID
	for fi, corners := range X.faces {
		for _, c := range corners {
			if c.UV == NoUV {
				missing = append(missing, seam.FaceID(fi))
				break
			}
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(seam.ErrMissingUVs, "%q faces %v", X.name, missing)
	}
	return nil
}

// CheckMultipleShells fails if X has fewer than two UV shells, in which case no seam can be paired.
func (X *Snapshot) CheckMultipleShells() error {
	if X.numShells < 2 {
		return errors.Wrapf(seam.ErrSingleShell, "%q", X.name)
	}
	return nil
}

// CheckConnected fails if no vertex of X carries more than one UV id: its UV shells are
// separate pieces in 3D as well, so no border can be paired across a cut.
func (X *Snapshot) CheckConnected() error {
	for _, uvs := range X.vtxUVs {
		if len(uvs) > 1 {
			return nil
		}
	}
	return errors.Wrapf(seam.ErrUnpairableBorder, "%q", X.name)
}

// CheckFlat fails unless every vertex of X carries exactly one UV id.
func (X *Snapshot) CheckFlat() error {
	for v, uvs := range X.vtxUVs {
		if len(uvs) != 1 {
			return errors.Wrapf(seam.ErrNotFlat, "%q vertex %d has %d uvs", X.name, v, len(uvs))
		}
	}
	return nil
}
