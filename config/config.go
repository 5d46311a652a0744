// Package config loads render settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/lumenrt/lumen/compute"
	"github.com/lumenrt/lumen/log"
	"github.com/lumenrt/lumen/renderer"
	"github.com/lumenrt/lumen/tracer"
	"github.com/lumenrt/lumen/types"
)

var (
	ErrInvalidDimensions   = errors.New("config: frame width and height must be positive")
	ErrInvalidFOV          = errors.New("config: fov must be in the (0, 180) degree range")
	ErrInvalidSunDirection = errors.New("config: sun direction must not be zero")
)

const (
	DefaultWidth  = 900
	DefaultHeight = 562
)

type Config struct {
	Render RenderConfig `toml:"render"`
	Sky    SkyConfig    `toml:"sky"`
	Device DeviceConfig `toml:"device"`
	Log    LogConfig    `toml:"log"`
}

type RenderConfig struct {
	Width       uint32  `toml:"width"`
	Height      uint32  `toml:"height"`
	Samples     uint32  `toml:"samples"`
	Bounces     uint32  `toml:"bounces"`
	FOV         float32 `toml:"fov"`
	ShowNormals bool    `toml:"show_normals"`
	Seed        uint32  `toml:"seed"`
	MaxTicks    uint32  `toml:"max_ticks"`
}

// Colors and directions are RGB / XYZ triplets.
type SkyConfig struct {
	Horizon      [3]float32 `toml:"horizon"`
	Zenith       [3]float32 `toml:"zenith"`
	Ground       [3]float32 `toml:"ground"`
	SunDirection [3]float32 `toml:"sun_direction"`
	SunColor     [3]float32 `toml:"sun_color"`
	SunFocus     float32    `toml:"sun_focus"`
	SunIntensity float32    `toml:"sun_intensity"`
}

type DeviceConfig struct {
	// One of cpu, gpu or all.
	Type string `toml:"type"`

	// Only use devices whose name contains this value.
	Match string `toml:"match"`

	// Skip devices whose name contains any of these values.
	Blacklist []string `toml:"blacklist"`

	// Optional path to a kernel program overriding the embedded one.
	Program string `toml:"program"`
}

type LogConfig struct {
	// One of debug, info, notice, warning or error.
	Level string `toml:"level"`
}

// Get the default configuration.
func Default() Config {
	sky := tracer.DefaultSky()
	return Config{
		Render: RenderConfig{
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			Samples: tracer.DefaultSamples,
			Bounces: tracer.DefaultBounces,
			FOV:     tracer.DefaultFOV,
		},
		Sky: SkyConfig{
			Horizon:      triplet(sky.HorizonColor),
			Zenith:       triplet(sky.ZenithColor),
			Ground:       triplet(sky.GroundColor),
			SunDirection: triplet(sky.SunDirection),
			SunColor:     triplet(sky.SunColor),
			SunFocus:     sky.SunFocus,
			SunIntensity: sky.SunIntensity,
		},
		Device: DeviceConfig{
			Type: "all",
		},
		Log: LogConfig{
			Level: "notice",
		},
	}
}

func triplet(v types.Vec4) [3]float32 {
	return [3]float32{v[0], v[1], v[2]}
}

// Load a configuration file. Settings missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: could not load %s: %w", path, err)
	}
	return cfg, nil
}

// Parse a TOML configuration. Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return Config{}, fmt.Errorf("unknown settings\n%s", strictErr.String())
		}
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Render.Width == 0 || c.Render.Height == 0 {
		return ErrInvalidDimensions
	}
	if c.Render.FOV <= 0 || c.Render.FOV >= 180 {
		return fmt.Errorf("%w: %v", ErrInvalidFOV, c.Render.FOV)
	}
	if c.Sky.SunDirection == [3]float32{} {
		return ErrInvalidSunDirection
	}
	if _, err := compute.ParseDeviceType(c.Device.Type); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Get the log verbosity selected by the log section.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.Notice
	}
	return level
}

// Get the device type mask selected by the device section.
func (c Config) DeviceType() compute.DeviceType {
	typ, err := compute.ParseDeviceType(c.Device.Type)
	if err != nil {
		return compute.AllDevices
	}
	return typ
}

// Convert the render and sky sections into renderer options.
func (c Config) RendererOptions() renderer.Options {
	return renderer.Options{
		FrameW:          c.Render.Width,
		FrameH:          c.Render.Height,
		SamplesPerPixel: c.Render.Samples,
		NumBounces:      c.Render.Bounces,
		FOV:             c.Render.FOV,
		ShowNormals:     c.Render.ShowNormals,
		MaxTicks:        c.Render.MaxTicks,
		Seed:            c.Render.Seed,
		Sky: &renderer.Sky{
			Horizon:      types.Vec3(c.Sky.Horizon),
			Zenith:       types.Vec3(c.Sky.Zenith),
			Ground:       types.Vec3(c.Sky.Ground),
			SunDirection: types.Vec3(c.Sky.SunDirection),
			SunColor:     types.Vec3(c.Sky.SunColor),
			SunFocus:     c.Sky.SunFocus,
			SunIntensity: c.Sky.SunIntensity,
		},
	}
}
