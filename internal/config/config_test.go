package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 600 || cfg.Graphics.Height != 600 {
		t.Errorf("expected 600x600 window, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Graphics.FPSLimit != 60 {
		t.Errorf("expected fps limit 60, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Camera.Position != [3]float32{0, 0, 3} {
		t.Errorf("expected camera at (0,0,3), got %v", cfg.Camera.Position)
	}
	if cfg.Camera.Near >= cfg.Camera.Far {
		t.Errorf("near %g should be less than far %g", cfg.Camera.Near, cfg.Camera.Far)
	}

	if len(cfg.Viewer.ModelExtensions) != 1 || cfg.Viewer.ModelExtensions[0] != ".obj" {
		t.Errorf("expected [.obj] filter, got %v", cfg.Viewer.ModelExtensions)
	}
	if cfg.Viewer.RotationStep != 0.005 {
		t.Errorf("expected rotation step 0.005, got %f", cfg.Viewer.RotationStep)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  title: "Test"
  width: 1024
  height: 768
  vsync: false
  fps_limit: 144

camera:
  position: [1, 2, 5]
  speed: 0.5
  fov: 60

viewer:
  model_extensions: [".obj", ".stl"]
  max_texture_size: 1024

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Title != "Test" {
		t.Errorf("expected title 'Test', got %q", cfg.Graphics.Title)
	}
	if cfg.Graphics.Width != 1024 || cfg.Graphics.Height != 768 {
		t.Errorf("expected 1024x768, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Camera.Position != [3]float32{1, 2, 5} {
		t.Errorf("expected position (1,2,5), got %v", cfg.Camera.Position)
	}
	if cfg.Camera.Speed != 0.5 {
		t.Errorf("expected speed 0.5, got %f", cfg.Camera.Speed)
	}
	// Unset keys keep their defaults.
	if cfg.Camera.Far != 100 {
		t.Errorf("expected default far plane 100, got %f", cfg.Camera.Far)
	}
	if len(cfg.Viewer.ModelExtensions) != 2 {
		t.Errorf("expected 2 extensions, got %v", cfg.Viewer.ModelExtensions)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, true},
		{"negative height", func(c *Config) { c.Graphics.Height = -1 }, true},
		{"near beyond far", func(c *Config) { c.Camera.Near = 200 }, true},
		{"zero near", func(c *Config) { c.Camera.Near = 0 }, true},
		{"no extensions", func(c *Config) { c.Viewer.ModelExtensions = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNormalizesExtensions(t *testing.T) {
	cfg := Default()
	cfg.Viewer.ModelExtensions = []string{"obj", ".stl"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Viewer.ModelExtensions[0] != ".obj" {
		t.Errorf("expected .obj, got %s", cfg.Viewer.ModelExtensions[0])
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "model flag",
			setup: func() { *flagModel = "cube.obj" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewer.InitialModel != "cube.obj" {
					t.Errorf("expected initial model cube.obj, got %s", cfg.Viewer.InitialModel)
				}
			},
			teardown: func() { *flagModel = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 1280
				*flagHeight = 720
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
					t.Errorf("expected 1280x720, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width comes from the flag, height from the file.
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Viewer.InitialModel = "models/teapot.obj"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Viewer.InitialModel != "models/teapot.obj" {
		t.Errorf("expected initial model to survive save, got %q", loaded.Viewer.InitialModel)
	}
}
