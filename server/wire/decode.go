package wire

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mo-shahab/go-pong/server/game"
	"github.com/mo-shahab/go-pong/server/input"
	"github.com/mo-shahab/go-pong/server/session"
)

var (
	ErrBadMessage  = errors.New("bad message")
	ErrUnknownType = errors.New("unknown message type")
)

// Inbound message types.
const (
	TypeSelect   = "select"
	TypePlay     = "play"
	TypeKey      = "key"
	TypePointer  = "pointer"
	TypeSettings = "settings"
	TypeResize   = "resize"
)

// Decode parses one payload into the events it carries. Keys that nothing
// is bound to decode to no events.
func Decode(c Codec, data []byte) ([]game.Event, error) {
	msg, err := c.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	return Events(msg)
}

// Events maps an envelope to engine events.
func Events(msg *structpb.Struct) ([]game.Event, error) {
	m := fields{msg.GetFields()}
	typ, ok := m.str("type")
	if !ok {
		return nil, fmt.Errorf("%w: missing type", ErrBadMessage)
	}

	switch typ {
	case TypeSelect:
		name, ok := m.str("mode")
		if !ok {
			return nil, fmt.Errorf("%w: select needs a mode", ErrBadMessage)
		}
		mode, err := session.ParseMode(name)
		if err != nil {
			return nil, err
		}
		diff, _ := m.num("difficulty")
		return one(game.SelectMode{Mode: mode, Difficulty: session.Difficulty(diff)}), nil

	case TypePlay:
		return one(game.Play{}), nil

	case TypeKey:
		code, ok := m.str("code")
		if !ok {
			return nil, fmt.Errorf("%w: key needs a code", ErrBadMessage)
		}
		key := input.Key(code)
		if !bound(key) {
			return nil, nil
		}
		if ticks, ok := m.num("ticks"); ok {
			return one(game.KeyTap{Key: key, Ticks: int(ticks)}), nil
		}
		if down, _ := m.boolean("down"); down {
			return one(game.KeyDown{Key: key}), nil
		}
		return one(game.KeyUp{Key: key}), nil

	case TypePointer:
		x, okX := m.num("x")
		y, okY := m.num("y")
		if !okX || !okY {
			return nil, fmt.Errorf("%w: pointer needs x and y", ErrBadMessage)
		}
		return one(game.Pointer{X: x, Y: y}), nil

	case TypeSettings:
		var evs []game.Event
		if v, ok := m.num("volume"); ok {
			evs = append(evs, game.SetVolume{Volume: int(v)})
		}
		if id, ok := m.str("resolution"); ok {
			evs = append(evs, game.SetResolution{ID: id})
		}
		if on, ok := m.boolean("shadows"); ok {
			evs = append(evs, game.SetShadows{On: on})
		}
		return evs, nil

	case TypeResize:
		w, okW := m.num("width")
		h, okH := m.num("height")
		if !okW || !okH {
			return nil, fmt.Errorf("%w: resize needs width and height", ErrBadMessage)
		}
		return one(game.Resize{Width: int(w), Height: int(h)}), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
}

func one(ev game.Event) []game.Event { return []game.Event{ev} }

func bound(k input.Key) bool {
	if _, ok := input.DefaultBindings[k]; ok {
		return true
	}
	_, ok := input.DefaultTriggers[k]
	return ok
}

type fields struct {
	m map[string]*structpb.Value
}

func (f fields) str(key string) (string, bool) {
	v, ok := f.m[key].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", false
	}
	return v.StringValue, true
}

func (f fields) num(key string) (float64, bool) {
	v, ok := f.m[key].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false
	}
	return v.NumberValue, true
}

func (f fields) boolean(key string) (bool, bool) {
	v, ok := f.m[key].GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, false
	}
	return v.BoolValue, true
}
