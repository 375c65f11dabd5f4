// Package config handles application configuration loading and management.
package config

import "time"

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Assets   AssetsConfig   `yaml:"assets"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width          int   `yaml:"width"`
	Height         int   `yaml:"height"`
	Fullscreen     bool  `yaml:"fullscreen"`
	VSync          bool  `yaml:"vsync"`
	FPSLimit       int   `yaml:"fps_limit"`
	MaxTextureSize int   `yaml:"max_texture_size"` // 0 = no limit
	ClearColor     Color `yaml:"clear_color"`
}

// AssetsConfig holds resource locations.
type AssetsConfig struct {
	Paths        []string `yaml:"paths"`         // Asset roots, later entries win
	ShaderDir    string   `yaml:"shader_dir"`    // Optional GLSL overrides
	WatchShaders bool     `yaml:"watch_shaders"` // Recompile on change
}

// SceneConfig describes the star system and how it is drawn.
type SceneConfig struct {
	Camera      CameraConfig   `yaml:"camera"`
	SphereBands int            `yaml:"sphere_bands"`
	Lighting    LightingConfig `yaml:"lighting"`
	Star        BodyConfig     `yaml:"star"`
	Planets     []BodyConfig   `yaml:"planets"`
	Moon        MoonConfig     `yaml:"moon"`
	Rings       RingsConfig    `yaml:"rings"`
	Marker      MarkerConfig   `yaml:"marker"`
	Background  LayerConfig    `yaml:"background"`
	Overlay     OverlayConfig  `yaml:"overlay"`
	Tour        TourConfig     `yaml:"tour"`
}

// CameraConfig places the fixed camera.
type CameraConfig struct {
	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
	Near   float32    `yaml:"near"`
	Far    float32    `yaml:"far"`
}

// LightingConfig holds the Phong light parameters.
type LightingConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Ambient   Color   `yaml:"ambient"`
	Diffuse   Color   `yaml:"diffuse"`
	Specular  Color   `yaml:"specular"`
	Shininess float32 `yaml:"shininess"`
}

// BodyConfig describes one body. Speeds are degrees per frame.
type BodyConfig struct {
	Name        string  `yaml:"name"`
	Texture     string  `yaml:"texture"`
	Color       Color   `yaml:"color"` // Placeholder when the texture fails
	Radius      float32 `yaml:"radius"`
	OrbitRadius float32 `yaml:"orbit_radius"`
	OrbitSpeed  float32 `yaml:"orbit_speed"`
	SpinSpeed   float32 `yaml:"spin_speed"`
}

// MoonConfig is a body orbiting the planet at index Parent.
type MoonConfig struct {
	BodyConfig `yaml:",inline"`
	Parent     int `yaml:"parent"`
}

// RingsConfig holds orbit ring settings.
type RingsConfig struct {
	Segments int   `yaml:"segments"`
	Color    Color `yaml:"color"`
}

// MarkerConfig holds selection marker settings.
type MarkerConfig struct {
	Scale float32 `yaml:"scale"` // Half-extent as a multiple of the body radius
	Color Color   `yaml:"color"`
}

// LayerConfig is a textured full-screen layer.
type LayerConfig struct {
	Texture string `yaml:"texture"`
	Color   Color  `yaml:"color"`
}

// OverlayConfig drives the drifting overlay quad.
type OverlayConfig struct {
	LayerConfig `yaml:",inline"`
	Start       float32 `yaml:"start"`
	Speed       float32 `yaml:"speed"`
	Min         float32 `yaml:"min"`
	Max         float32 `yaml:"max"`
	Depth       float32 `yaml:"depth"`
	AlphaCutoff float32 `yaml:"alpha_cutoff"`
}

// TourConfig cycles the selection automatically. Zero disables it.
type TourConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config reproducing the reference scene.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:          1280,
			Height:         720,
			Fullscreen:     false,
			VSync:          true,
			FPSLimit:       60,
			MaxTextureSize: 2048,
			ClearColor:     MustColor("#000000", 1),
		},
		Assets: AssetsConfig{
			Paths: []string{"assets"},
		},
		Scene: SceneConfig{
			Camera: CameraConfig{
				Eye:  [3]float32{0, 3, -10},
				Near: 1,
				Far:  50,
			},
			SphereBands: 40,
			Lighting: LightingConfig{
				Enabled:   true,
				Ambient:   MustColor("#262626", 1),
				Diffuse:   MustColor("#ffffff", 1),
				Specular:  MustColor("#4d4d4d", 1),
				Shininess: 16,
			},
			Star: BodyConfig{Name: "sun", Texture: "textures/sun.jpg", Color: MustColor("#ffcc33", 1), Radius: 0.6, SpinSpeed: 1},
			Planets: []BodyConfig{
				{Name: "mercury", Texture: "textures/mercury.jpg", Color: MustColor("#9e9e9e", 1), Radius: 0.15, OrbitRadius: 1.0, OrbitSpeed: 1.1, SpinSpeed: 0.1},
				{Name: "venus", Texture: "textures/venus.jpg", Color: MustColor("#e6c27a", 1), Radius: 0.19, OrbitRadius: 1.7, OrbitSpeed: 0.5, SpinSpeed: 0.1},
				{Name: "earth", Texture: "textures/earth.jpg", Color: MustColor("#3b7dd8", 1), Radius: 0.2, OrbitRadius: 2.4, OrbitSpeed: 0.4, SpinSpeed: 3},
				{Name: "mars", Texture: "textures/mars.jpg", Color: MustColor("#c1440e", 1), Radius: 0.18, OrbitRadius: 3.3, OrbitSpeed: 0.3, SpinSpeed: 3},
				{Name: "jupiter", Texture: "textures/jupiter.jpg", Color: MustColor("#d8ca9d", 1), Radius: 0.4, OrbitRadius: 4.8, OrbitSpeed: 0.22, SpinSpeed: 2},
				{Name: "saturn", Texture: "textures/saturn.jpg", Color: MustColor("#e3c98f", 1), Radius: 0.3, OrbitRadius: 6, OrbitSpeed: 0.15, SpinSpeed: 2},
				{Name: "uranus", Texture: "textures/uranus.jpg", Color: MustColor("#9fd8e6", 1), Radius: 0.28, OrbitRadius: 7, OrbitSpeed: 0.12, SpinSpeed: 2},
				{Name: "neptune", Texture: "textures/neptune.jpg", Color: MustColor("#3f54ba", 1), Radius: 0.28, OrbitRadius: 8, OrbitSpeed: 0.08, SpinSpeed: 2},
			},
			Moon: MoonConfig{
				BodyConfig: BodyConfig{Name: "moon", Texture: "textures/moon.jpg", Color: MustColor("#cccccc", 1), Radius: 0.05, OrbitRadius: 0.4, OrbitSpeed: 1.0},
				Parent:     2,
			},
			Rings: RingsConfig{
				Segments: 100,
				Color:    MustColor("#ffffff", 0.2),
			},
			Marker: MarkerConfig{
				Scale: 1.5,
				Color: MustColor("#ffffff", 1),
			},
			Background: LayerConfig{
				Texture: "textures/stars.jpg",
				Color:   MustColor("#000000", 1),
			},
			Overlay: OverlayConfig{
				LayerConfig: LayerConfig{Texture: "textures/blackhole.png", Color: MustColor("#000000", 0)},
				Start:       -10,
				Speed:       0.02,
				Min:         -15,
				Max:         15,
				Depth:       10,
				AlphaCutoff: 0.1,
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
