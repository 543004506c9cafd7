// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds window and rendering settings.
type GraphicsConfig struct {
	Title      string     `yaml:"title"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	FPSLimit   int        `yaml:"fps_limit"`
	ClearColor [4]float32 `yaml:"clear_color"`
}

// CameraConfig holds the initial free-fly camera state.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Speed       float32    `yaml:"speed"`       // world units per key press
	Sensitivity float32    `yaml:"sensitivity"` // degrees per pixel of mouse motion
	FOV         float32    `yaml:"fov"`         // vertical, degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

// ViewerConfig holds model and scene settings.
type ViewerConfig struct {
	ModelExtensions []string   `yaml:"model_extensions"` // file dialog filter
	StartDir        string     `yaml:"start_dir"`
	InitialModel    string     `yaml:"initial_model"`
	ScreenshotDir   string     `yaml:"screenshot_dir"`
	MaxTextureSize  int        `yaml:"max_texture_size"`
	RotationStep    float32    `yaml:"rotation_step"` // radians per frame
	RotationAxis    [3]float32 `yaml:"rotation_axis"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:      "Model Viewer",
			Width:      600,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   60,
			ClearColor: [4]float32{0.2, 0.3, 0.3, 1.0},
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 3},
			Speed:       0.1,
			Sensitivity: 0.1,
			FOV:         45,
			Near:        0.1,
			Far:         100,
		},
		Viewer: ViewerConfig{
			ModelExtensions: []string{".obj"},
			StartDir:        ".",
			ScreenshotDir:   "screenshots",
			MaxTextureSize:  4096,
			RotationStep:    0.005,
			RotationAxis:    [3]float32{1, 0.5, 0},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
