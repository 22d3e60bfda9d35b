package densemap

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Detector payloads disagree on grid shape between producers: row-major 2D
// arrays, flattened 1D arrays, and 2D arrays wrapped in a singleton
// channel dimension all occur in the wild. Decoding accepts every shape
// and canonicalizes to a flat row-major grid.

// rawInstance mirrors one detected instance on the wire. Width and Height
// are optional and only needed when every grid arrives flattened.
type rawInstance struct {
	BodyParts json.RawMessage `json:"body_parts"`
	U         json.RawMessage `json:"u_coordinates"`
	V         json.RawMessage `json:"v_coordinates"`
	BBox      []float64       `json:"bbox"`
	Score     float64         `json:"score"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
}

// rawResponse mirrors the detector's top-level envelope.
type rawResponse struct {
	NumInstances int           `json:"num_instances"`
	Instances    []rawInstance `json:"instances"`
	Error        string        `json:"error"`
}

// DecodeResponse parses a full detector response into its instances. A
// response with zero instances decodes to an empty slice, since a photo
// with no detectable body is expected data, not a failure. A detector-
// reported error becomes a Go error. A bare instance object without the
// envelope is also accepted.
func DecodeResponse(data []byte) ([]*Map, error) {
	var resp rawResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode detector response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("detector error: %s", resp.Error)
	}

	raws := resp.Instances
	if len(raws) == 0 {
		var single rawInstance
		if err := json.Unmarshal(data, &single); err == nil && len(single.BodyParts) > 0 {
			raws = []rawInstance{single}
		}
	}

	maps := make([]*Map, 0, len(raws))
	for i, raw := range raws {
		m, err := decodeRaw(raw)
		if err != nil {
			return nil, fmt.Errorf("instance %d: %w", i, err)
		}
		maps = append(maps, m)
	}
	return maps, nil
}

// DecodeInstance parses a single detector instance object.
func DecodeInstance(data []byte) (*Map, error) {
	var raw rawInstance
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode instance: %w", err)
	}
	return decodeRaw(raw)
}

func decodeRaw(raw rawInstance) (*Map, error) {
	partVals, pw, ph, err := decodeFloatGrid(raw.BodyParts)
	if err != nil {
		return nil, fmt.Errorf("body_parts: %w", err)
	}
	u, uw, uh, err := decodeFloatGrid(raw.U)
	if err != nil {
		return nil, fmt.Errorf("u_coordinates: %w", err)
	}
	v, vw, vh, err := decodeFloatGrid(raw.V)
	if err != nil {
		return nil, fmt.Errorf("v_coordinates: %w", err)
	}

	// Reconcile dimensions across explicit fields and 2D grids; flattened
	// grids contribute no dimensions of their own.
	width, height := raw.Width, raw.Height
	for _, d := range [][2]int{{pw, ph}, {uw, uh}, {vw, vh}} {
		if d[0] == 0 || d[1] == 0 {
			continue
		}
		if width == 0 && height == 0 {
			width, height = d[0], d[1]
		} else if width != d[0] || height != d[1] {
			return nil, fmt.Errorf("grid dimensions disagree: %dx%d vs %dx%d", width, height, d[0], d[1])
		}
	}
	if width == 0 && height == 0 && len(partVals) > 0 {
		// All grids flattened and no explicit dims: only a square grid can
		// be reconstructed.
		side := int(math.Sqrt(float64(len(partVals))))
		if side*side != len(partVals) {
			return nil, fmt.Errorf("cannot infer dimensions of flattened grid with %d cells", len(partVals))
		}
		width, height = side, side
	}

	if len(u) != len(partVals) || len(v) != len(partVals) {
		return nil, fmt.Errorf("grid sizes disagree: parts=%d u=%d v=%d", len(partVals), len(u), len(v))
	}
	if width*height != len(partVals) {
		return nil, fmt.Errorf("grid of %d cells does not fill %dx%d", len(partVals), width, height)
	}

	parts := make([]BodyPartID, len(partVals))
	for i, val := range partVals {
		parts[i] = BodyPartID(int(math.Round(val)))
	}

	m := &Map{
		Width:  width,
		Height: height,
		Parts:  parts,
		U:      u,
		V:      v,
		Score:  raw.Score,
	}
	for i := 0; i < len(raw.BBox) && i < 4; i++ {
		m.BBox[i] = raw.BBox[i]
	}
	return m, nil
}

// decodeFloatGrid accepts a grid as 2D rows, a singleton-wrapped 2D grid,
// or a flat 1D array. Width and height are zero when the shape does not
// carry them.
func decodeFloatGrid(raw json.RawMessage) ([]float64, int, int, error) {
	if len(raw) == 0 {
		return nil, 0, 0, nil
	}

	var rows [][]float64
	if err := json.Unmarshal(raw, &rows); err == nil {
		return flattenRows(rows)
	}

	var channels [][][]float64
	if err := json.Unmarshal(raw, &channels); err == nil {
		if len(channels) != 1 {
			return nil, 0, 0, fmt.Errorf("expected a single channel, got %d", len(channels))
		}
		return flattenRows(channels[0])
	}

	var flat []float64
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, 0, 0, nil
	}

	return nil, 0, 0, errors.New("grid is neither 1D, 2D, nor channel-wrapped 2D")
}

func flattenRows(rows [][]float64) ([]float64, int, int, error) {
	if len(rows) == 0 {
		return nil, 0, 0, nil
	}

	width := len(rows[0])
	flat := make([]float64, 0, len(rows)*width)
	for i, row := range rows {
		if len(row) != width {
			return nil, 0, 0, fmt.Errorf("row %d has %d cells, expected %d", i, len(row), width)
		}
		flat = append(flat, row...)
	}
	return flat, width, len(rows), nil
}
