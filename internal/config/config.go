// Package config handles game configuration loading and management.
package config

import "time"

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Portal   PortalConfig   `yaml:"portal"`
	Player   PlayerConfig   `yaml:"player"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// PortalConfig holds the portal subsystem tunables. The defaults come
// from the prototype's tuning passes; none of them is load-bearing.
type PortalConfig struct {
	// MeshDepth is the physical thickness of the portal volume. The
	// clip plane sits this far from the portal origin along forward.
	MeshDepth float32 `yaml:"mesh_depth"`

	// PropProximity is the crossing-detection radius for props.
	PropProximity float32 `yaml:"prop_proximity"`

	// PlayerProximity is the crossing-detection radius for the player.
	// Larger than PropProximity because the player origin is at ground
	// level, not at the volume's center.
	PlayerProximity float32 `yaml:"player_proximity"`

	// MinOutboundSpeed is the minimum speed the player leaves a portal
	// with, along the destination portal's outward direction.
	MinOutboundSpeed float32 `yaml:"min_outbound_speed"`

	// ObstacleRayLength is the reach of the placement adjustment rays.
	ObstacleRayLength float32 `yaml:"obstacle_ray_length"`

	// VerticalTolerance classifies a surface normal as floor/ceiling
	// when it is within this distance of vertical.
	VerticalTolerance float32 `yaml:"vertical_tolerance"`

	// RollDuration is the length of the upright-correction animation.
	RollDuration time.Duration `yaml:"roll_duration"`

	// KinematicWindow is how long the player body stays kinematic
	// around a teleport to avoid CCD artifacts.
	KinematicWindow time.Duration `yaml:"kinematic_window"`

	// RenderTargetWidth and RenderTargetHeight size the offscreen
	// surfaces the portal cameras render into.
	RenderTargetWidth  int `yaml:"render_target_width"`
	RenderTargetHeight int `yaml:"render_target_height"`
}

// PlayerConfig holds first-person controller settings.
type PlayerConfig struct {
	Speed            float32 `yaml:"speed"`
	SprintMultiplier float32 `yaml:"sprint_multiplier"`
	JumpSpeed        float32 `yaml:"jump_speed"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	Height           float32 `yaml:"height"`
	EyeHeight        float32 `yaml:"eye_height"`
	Mass             float32 `yaml:"mass"`
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
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Portal: PortalConfig{
			MeshDepth:          0.5,
			PropProximity:      1.0,
			PlayerProximity:    2.3,
			MinOutboundSpeed:   3.0,
			ObstacleRayLength:  1.0,
			VerticalTolerance:  0.001,
			RollDuration:       300 * time.Millisecond,
			KinematicWindow:    100 * time.Millisecond,
			RenderTargetWidth:  1280,
			RenderTargetHeight: 720,
		},
		Player: PlayerConfig{
			Speed:            3.0,
			SprintMultiplier: 2.0,
			JumpSpeed:        6.0,
			MouseSensitivity: 0.004,
			Height:           1.8,
			EyeHeight:        1.5,
			Mass:             80,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
