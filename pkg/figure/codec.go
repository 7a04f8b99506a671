package figure

import (
	"encoding/json"
	"os"

	"github.com/grovetools/covview/errors"
)

// RawValue is an attribute the callbacks carry through without inspecting.
type RawValue = json.RawMessage

// fields is a JSON object split into known keys and passthrough keys.
type fields map[string]json.RawMessage

func decodeFields(data []byte) (fields, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f, nil
}

// take decodes key into v and removes it. A value that does not fit v stays
// in the passthrough set and take reports false.
func (f fields) take(key string, v interface{}) bool {
	raw, ok := f[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false
	}
	delete(f, key)
	return true
}

func (f fields) put(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f[key] = data
	return nil
}

func (f fields) rest() map[string]RawValue {
	if len(f) == 0 {
		return nil
	}
	return map[string]RawValue(f)
}

func withExtra(extra map[string]RawValue) fields {
	out := make(fields, len(extra)+4)
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Figure) UnmarshalJSON(data []byte) error {
	obj, err := decodeFields(data)
	if err != nil {
		return err
	}
	var traces []*Trace
	if raw, ok := obj["data"]; ok {
		if err := json.Unmarshal(raw, &traces); err != nil {
			return err
		}
		delete(obj, "data")
	}
	var layout *Layout
	if raw, ok := obj["layout"]; ok {
		if err := json.Unmarshal(raw, &layout); err != nil {
			return err
		}
		delete(obj, "layout")
	}
	*f = Figure{Data: traces, Layout: layout, Extra: obj.rest()}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Figure) MarshalJSON() ([]byte, error) {
	obj := withExtra(f.Extra)
	data := f.Data
	if data == nil {
		data = []*Trace{}
	}
	if err := obj.put("data", data); err != nil {
		return nil, err
	}
	if f.Layout != nil {
		if err := obj.put("layout", f.Layout); err != nil {
			return nil, err
		}
	}
	return json.Marshal(map[string]json.RawMessage(obj))
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Layout) UnmarshalJSON(data []byte) error {
	obj, err := decodeFields(data)
	if err != nil {
		return err
	}
	axes := make(map[string]*Axis)
	for key, raw := range obj {
		if !IsAxisKey(key) {
			continue
		}
		var axis Axis
		if err := json.Unmarshal(raw, &axis); err != nil {
			continue
		}
		axes[key] = &axis
		delete(obj, key)
	}
	*l = Layout{Axes: axes, Extra: obj.rest()}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l Layout) MarshalJSON() ([]byte, error) {
	obj := withExtra(l.Extra)
	for key, axis := range l.Axes {
		if axis == nil {
			continue
		}
		if err := obj.put(key, axis); err != nil {
			return nil, err
		}
	}
	return json.Marshal(map[string]json.RawMessage(obj))
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Axis) UnmarshalJSON(data []byte) error {
	obj, err := decodeFields(data)
	if err != nil {
		return err
	}
	var out Axis
	obj.take("range", &out.Range)
	var autorange bool
	if obj.take("autorange", &autorange) {
		out.Autorange = Bool(autorange)
	}
	var fixedrange bool
	if obj.take("fixedrange", &fixedrange) {
		out.Fixedrange = Bool(fixedrange)
	}
	out.Extra = obj.rest()
	*a = out
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Axis) MarshalJSON() ([]byte, error) {
	obj := withExtra(a.Extra)
	if a.Range != nil {
		if err := obj.put("range", a.Range); err != nil {
			return nil, err
		}
	}
	if a.Autorange != nil {
		if err := obj.put("autorange", *a.Autorange); err != nil {
			return nil, err
		}
	}
	if a.Fixedrange != nil {
		if err := obj.put("fixedrange", *a.Fixedrange); err != nil {
			return nil, err
		}
	}
	return json.Marshal(map[string]json.RawMessage(obj))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Trace) UnmarshalJSON(data []byte) error {
	obj, err := decodeFields(data)
	if err != nil {
		return err
	}
	var out Trace
	obj.take("name", &out.Name)
	obj.take("legendgroup", &out.LegendGroup)
	obj.take("x", &out.X)
	obj.take("y", &out.Y)
	obj.take("xaxis", &out.XAxis)
	obj.take("yaxis", &out.YAxis)
	obj.take("line", &out.Line)
	obj.take("fillcolor", &out.FillColor)
	out.Extra = obj.rest()
	*t = out
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Trace) MarshalJSON() ([]byte, error) {
	obj := withExtra(t.Extra)
	puts := []struct {
		key   string
		value interface{}
		set   bool
	}{
		{"name", t.Name, t.Name != ""},
		{"legendgroup", t.LegendGroup, t.LegendGroup != ""},
		{"x", t.X, t.X != nil},
		{"y", t.Y, t.Y != nil},
		{"xaxis", t.XAxis, t.XAxis != ""},
		{"yaxis", t.YAxis, t.YAxis != ""},
		{"line", t.Line, t.Line != nil},
		{"fillcolor", t.FillColor, t.FillColor != ""},
	}
	for _, p := range puts {
		if !p.set {
			continue
		}
		if err := obj.put(p.key, p.value); err != nil {
			return nil, err
		}
	}
	return json.Marshal(map[string]json.RawMessage(obj))
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Line) UnmarshalJSON(data []byte) error {
	obj, err := decodeFields(data)
	if err != nil {
		return err
	}
	var out Line
	obj.take("color", &out.Color)
	out.Extra = obj.rest()
	*l = out
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l Line) MarshalJSON() ([]byte, error) {
	obj := withExtra(l.Extra)
	if l.Color != "" {
		if err := obj.put("color", l.Color); err != nil {
			return nil, err
		}
	}
	return json.Marshal(map[string]json.RawMessage(obj))
}

// Decode parses a figure from JSON.
func Decode(data []byte) (*Figure, error) {
	var f Figure
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidFigure, "failed to parse figure JSON")
	}
	return &f, nil
}

// Load reads a figure from a JSON file.
func Load(path string) (*Figure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read figure").
			WithDetail("path", path)
	}
	return Decode(data)
}
