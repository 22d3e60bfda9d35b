// Package densemap models per-pixel body-part correspondence maps produced
// by DensePose-style detectors and decodes them from the detector's wire
// formats.
package densemap

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/ayusman/sandow/internal/geometry"
)

// Map is one detected body instance: a row-major grid of body part ids
// with parallel surface coordinate grids, plus the detector's bounding box
// and confidence.
type Map struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Parts  []BodyPartID `json:"parts"`
	U      []float64    `json:"u"`
	V      []float64    `json:"v"`
	BBox   [4]float64   `json:"bbox"`
	Score  float64      `json:"score"`
}

// Primary selects the instance the engines score when a photo yields
// several bodies: the highest detection confidence wins, with ties keeping
// the earliest instance. Selection is by this policy, never by array
// position.
func Primary(maps []*Map) *Map {
	var best *Map
	for _, m := range maps {
		if m == nil {
			continue
		}
		if best == nil || m.Score > best.Score {
			best = m
		}
	}
	return best
}

// Empty reports whether the map has no foreground pixels.
func (m *Map) Empty() bool {
	if m == nil || len(m.Parts) == 0 {
		return true
	}
	for _, p := range m.Parts {
		if p != PartBackground {
			return false
		}
	}
	return true
}

// Histogram counts grid pixels per body part id, background included.
func (m *Map) Histogram() map[BodyPartID]int {
	counts := make(map[BodyPartID]int)
	if m == nil {
		return counts
	}
	for _, p := range m.Parts {
		counts[p]++
	}
	return counts
}

// MeanUV returns the mean surface coordinate of each foreground part,
// with u in X and v in Y.
func (m *Map) MeanUV() map[BodyPartID]geometry.Point {
	means := make(map[BodyPartID]geometry.Point)
	if m == nil {
		return means
	}

	counts := make(map[BodyPartID]int)
	for i, p := range m.Parts {
		if p == PartBackground || i >= len(m.U) || i >= len(m.V) {
			continue
		}
		pt := means[p]
		pt.X += m.U[i]
		pt.Y += m.V[i]
		means[p] = pt
		counts[p]++
	}

	for p, n := range counts {
		means[p] = geometry.Point{
			X: means[p].X / float64(n),
			Y: means[p].Y / float64(n),
		}
	}
	return means
}

// Digest returns a stable hex fingerprint of the map contents, suitable as
// cache key material. Surface coordinates are quantized to 16 bits so the
// digest is insensitive to sub-precision noise.
func (m *Map) Digest() string {
	if m == nil {
		return ""
	}

	h := sha1.New()
	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[:4], uint32(m.Width))
	binary.LittleEndian.PutUint32(dims[4:], uint32(m.Height))
	h.Write(dims[:])

	buf := make([]byte, 0, len(m.Parts)*5)
	for i, p := range m.Parts {
		var u, v float64
		if i < len(m.U) {
			u = m.U[i]
		}
		if i < len(m.V) {
			v = m.V[i]
		}
		qu := quantize(u)
		qv := quantize(v)
		buf = append(buf, byte(p), byte(qu>>8), byte(qu), byte(qv>>8), byte(qv))
	}
	h.Write(buf)

	return hex.EncodeToString(h.Sum(nil))
}

func quantize(v float64) uint16 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint16(math.Round(v * 65535))
}
