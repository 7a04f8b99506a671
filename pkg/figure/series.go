package figure

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
)

// Series is a numeric trace column. JSON nulls decode to NaN and NaN encodes
// back to null. Plotly's typed-array form ({"dtype": "f8", "bdata": "..."})
// is also accepted on input.
type Series []float64

type typedArray struct {
	DType string `json:"dtype"`
	BData string `json:"bdata"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Series) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		var ta typedArray
		if err := json.Unmarshal(data, &ta); err != nil {
			return err
		}
		values, err := decodeTyped(ta)
		if err != nil {
			return err
		}
		*s = values
		return nil
	}

	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Series, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	*s = out
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Series) MarshalJSON() ([]byte, error) {
	raw := make([]*float64, len(s))
	for i := range s {
		if math.IsNaN(s[i]) || math.IsInf(s[i], 0) {
			continue
		}
		v := s[i]
		raw[i] = &v
	}
	return json.Marshal(raw)
}

func decodeTyped(ta typedArray) (Series, error) {
	buf, err := base64.StdEncoding.DecodeString(ta.BData)
	if err != nil {
		return nil, fmt.Errorf("decode bdata: %w", err)
	}

	var size int
	var read func(b []byte) float64
	switch ta.DType {
	case "f8":
		size, read = 8, func(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) }
	case "f4":
		size, read = 4, func(b []byte) float64 { return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))) }
	case "i4":
		size, read = 4, func(b []byte) float64 { return float64(int32(binary.LittleEndian.Uint32(b))) }
	case "u4":
		size, read = 4, func(b []byte) float64 { return float64(binary.LittleEndian.Uint32(b)) }
	case "i2":
		size, read = 2, func(b []byte) float64 { return float64(int16(binary.LittleEndian.Uint16(b))) }
	case "u2":
		size, read = 2, func(b []byte) float64 { return float64(binary.LittleEndian.Uint16(b)) }
	case "i1":
		size, read = 1, func(b []byte) float64 { return float64(int8(b[0])) }
	case "u1":
		size, read = 1, func(b []byte) float64 { return float64(b[0]) }
	default:
		return nil, fmt.Errorf("unsupported dtype %q", ta.DType)
	}

	if len(buf)%size != 0 {
		return nil, fmt.Errorf("bdata length %d is not a multiple of %d", len(buf), size)
	}
	out := make(Series, len(buf)/size)
	for i := range out {
		out[i] = read(buf[i*size : (i+1)*size])
	}
	return out, nil
}

// Max returns the largest finite value in s and whether one was found.
func (s Series) Max() (float64, bool) {
	max := math.Inf(-1)
	found := false
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v > max {
			max = v
		}
		found = true
	}
	return max, found
}

// Window returns s[lo:hi] with both bounds clamped to the series.
func (s Series) Window(lo, hi int) Series {
	if lo < 0 {
		lo = 0
	}
	if hi > len(s) {
		hi = len(s)
	}
	if lo >= hi {
		return nil
	}
	return s[lo:hi]
}
