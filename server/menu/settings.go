package menu

import (
	"errors"
	"fmt"
)

var (
	ErrVolumeRange       = errors.New("volume must be between 0 and 100")
	ErrUnknownResolution = errors.New("unknown resolution preset")
)

// Native renders at the size of the browser window.
const Native = "n"

// Resolution is a render target size in pixels.
type Resolution struct {
	Width  int
	Height int
}

// resolutions are the display size presets offered by the menu.
var resolutions = map[string]Resolution{
	"1":  {3840, 2160},
	"2":  {2048, 1080},
	"3":  {1920, 1080},
	"4":  {1366, 768},
	"5":  {1280, 1024},
	"6":  {1280, 800},
	"7":  {1280, 720},
	"8":  {1024, 768},
	"9":  {800, 600},
	"10": {640, 480},
}

// LookupResolution returns the preset size for id. Native has no fixed size.
func LookupResolution(id string) (Resolution, bool) {
	r, ok := resolutions[id]
	return r, ok
}

// Settings are the player's display and sound preferences.
type Settings struct {
	Volume     int
	Resolution string
	Shadows    bool
}

func DefaultSettings() Settings {
	return Settings{Volume: 100, Resolution: Native, Shadows: true}
}

func (s *Settings) SetVolume(v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%w: %d", ErrVolumeRange, v)
	}
	s.Volume = v
	return nil
}

func (s *Settings) SetResolution(id string) error {
	if id != Native {
		if _, ok := resolutions[id]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownResolution, id)
		}
	}
	s.Resolution = id
	return nil
}

func (s *Settings) SetShadows(on bool) { s.Shadows = on }

// Size resolves the render size; native uses the window size.
func (s Settings) Size(windowWidth, windowHeight int) Resolution {
	if r, ok := resolutions[s.Resolution]; ok {
		return r
	}
	return Resolution{Width: windowWidth, Height: windowHeight}
}
