package main

import (
	"fmt"
	"sort"

	jsoniter "github.com/json-iterator/go"

	gui "github.com/grindlemire/go-gui"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// step is one host input delivered before the frame it names.
type step struct {
	Frame  int    `json:"frame"`
	Type   string `json:"type"` // move, click, wheel, text, key, delete
	X      int    `json:"x"`
	Y      int    `json:"y"`
	DX     int    `json:"dx"`
	DY     int    `json:"dy"`
	Text   string `json:"text"`
	Key    string `json:"key"`
	Offset int    `json:"offset"`
}

// loadScript decodes a JSON array of steps and orders them by frame,
// keeping file order within a frame.
func loadScript(data []byte) ([]step, error) {
	var steps []step
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	for n, s := range steps {
		switch s.Type {
		case "move", "click", "wheel", "text", "delete":
		case "key":
			if _, ok := gui.ParseKey(s.Key); !ok {
				return nil, fmt.Errorf("load events: step %d: unknown key %q", n, s.Key)
			}
		default:
			return nil, fmt.Errorf("load events: step %d: unknown type %q", n, s.Type)
		}
		if s.Frame < 0 {
			return nil, fmt.Errorf("load events: step %d: negative frame", n)
		}
	}
	sort.SliceStable(steps, func(a, b int) bool { return steps[a].Frame < steps[b].Frame })
	return steps, nil
}

// apply delivers the step to inst. Editing steps fail when no text is
// focused.
func (s step) apply(inst *gui.Instance) error {
	switch s.Type {
	case "move":
		inst.PointerMove(s.X, s.Y)
	case "click":
		inst.Click(s.X, s.Y)
	case "wheel":
		inst.Wheel(s.X, s.Y, s.DX, s.DY)
	case "text":
		return inst.InsertText(s.Text)
	case "delete":
		return inst.Delete(s.Offset)
	case "key":
		k, _ := gui.ParseKey(s.Key)
		return inst.KeyPress(k)
	}
	return nil
}
