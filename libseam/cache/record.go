package cache

import (
	"github.com/fine-structures/seamtopo/seam"
	"github.com/gogo/protobuf/proto"
	"github.com/golang/geo/r2"
)

// AnalysisRecord is the cached outcome of one analysis: enough to rebuild curves and
// pairs without walking or matching again.
type AnalysisRecord struct {
	Key       uint64         `protobuf:"varint,1,opt,name=key,proto3" json:"key,omitempty"`
	Name      string         `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	BorderUVs []int32        `protobuf:"varint,3,rep,packed,name=border_uvs,json=borderUvs,proto3" json:"border_uvs,omitempty"`
	Anchors   []*AnchorEntry `protobuf:"bytes,4,rep,name=anchors,proto3" json:"anchors,omitempty"`
	Arcs      []*ArcEntry    `protobuf:"bytes,5,rep,name=arcs,proto3" json:"arcs,omitempty"`
	Pairs     []*PairEntry   `protobuf:"bytes,6,rep,name=pairs,proto3" json:"pairs,omitempty"`
}

func (m *AnalysisRecord) Reset()         { *m = AnalysisRecord{} }
func (m *AnalysisRecord) String() string { return proto.CompactTextString(m) }
func (*AnalysisRecord) ProtoMessage()    {}

type AnchorEntry struct {
	UV int32   `protobuf:"varint,1,opt,name=uv,proto3" json:"uv,omitempty"`
	U  float64 `protobuf:"fixed64,2,opt,name=u,proto3" json:"u,omitempty"`
	V  float64 `protobuf:"fixed64,3,opt,name=v,proto3" json:"v,omitempty"`
}

func (m *AnchorEntry) Reset()         { *m = AnchorEntry{} }
func (m *AnchorEntry) String() string { return proto.CompactTextString(m) }
func (*AnchorEntry) ProtoMessage()    {}

type ArcEntry struct {
	Start int32   `protobuf:"varint,1,opt,name=start,proto3" json:"start,omitempty"`
	End   int32   `protobuf:"varint,2,opt,name=end,proto3" json:"end,omitempty"`
	Path  []int32 `protobuf:"varint,3,rep,packed,name=path,proto3" json:"path,omitempty"`
	Shell int32   `protobuf:"varint,4,opt,name=shell,proto3" json:"shell,omitempty"`
}

func (m *ArcEntry) Reset()         { *m = ArcEntry{} }
func (m *ArcEntry) String() string { return proto.CompactTextString(m) }
func (*ArcEntry) ProtoMessage()    {}

type PairEntry struct {
	A int32 `protobuf:"varint,1,opt,name=a,proto3" json:"a,omitempty"`
	B int32 `protobuf:"varint,2,opt,name=b,proto3" json:"b,omitempty"`
}

func (m *PairEntry) Reset()         { *m = PairEntry{} }
func (m *PairEntry) String() string { return proto.CompactTextString(m) }
func (*PairEntry) ProtoMessage()    {}

// NewRecord flattens analysis output into a record.  Entries are kept in a stable order.
func NewRecord(key uint64, name string, borderUVs seam.UVSet, anchors seam.CoordTable, arcs []seam.Arc, pairs []seam.CurvePair) *AnalysisRecord {
	rec := &AnalysisRecord{
		Key:  key,
		Name: name,
	}
	for _, uv := range borderUVs.Sorted() {
		rec.BorderUVs = append(rec.BorderUVs, int32(uv))
	}
	for _, uv := range anchors.Keys().Sorted() {
		pt := anchors[uv]
		rec.Anchors = append(rec.Anchors, &AnchorEntry{UV: int32(uv), U: pt.X, V: pt.Y})
	}
	for _, arc := range arcs {
		entry := &ArcEntry{
			Start: int32(arc.Start),
			End:   int32(arc.End),
			Shell: int32(arc.Shell),
			Path:  make([]int32, len(arc.Path)),
		}
		for i, uv := range arc.Path {
			entry.Path[i] = int32(uv)
		}
		rec.Arcs = append(rec.Arcs, entry)
	}
	for _, pair := range pairs {
		rec.Pairs = append(rec.Pairs, &PairEntry{A: int32(pair.A), B: int32(pair.B)})
	}
	return rec
}

func (m *AnalysisRecord) BorderSet() seam.UVSet {
	out := make(seam.UVSet, len(m.BorderUVs))
	for _, uv := range m.BorderUVs {
		out.Add(seam.UVID(uv))
	}
	return out
}

func (m *AnalysisRecord) AnchorTable() seam.CoordTable {
	out := make(seam.CoordTable, len(m.Anchors))
	for _, entry := range m.Anchors {
		out[seam.UVID(entry.UV)] = r2.Point{X: entry.U, Y: entry.V}
	}
	return out
}

func (m *AnalysisRecord) ArcList() []seam.Arc {
	out := make([]seam.Arc, len(m.Arcs))
	for i, entry := range m.Arcs {
		arc := seam.Arc{
			Start: seam.UVID(entry.Start),
			End:   seam.UVID(entry.End),
			Shell: seam.ShellID(entry.Shell),
			Path:  make([]seam.UVID, len(entry.Path)),
		}
		for j, uv := range entry.Path {
			arc.Path[j] = seam.UVID(uv)
		}
		out[i] = arc
	}
	return out
}

// PairList returns the cached pairs numbered in order.  Pointers are not cached.
func (m *AnalysisRecord) PairList() []seam.CurvePair {
	out := make([]seam.CurvePair, len(m.Pairs))
	for i, entry := range m.Pairs {
		out[i] = seam.CurvePair{
			ID: i,
			A:  seam.CurveID(entry.A),
			B:  seam.CurveID(entry.B),
		}
	}
	return out
}
