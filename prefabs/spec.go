package prefabs

import (
	"fmt"

	"github.com/milk9111/thirdperson/camera"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type GroundSensorSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetY float64 `yaml:"offset_y"`
}

type PlayerSpec struct {
	Name         string           `yaml:"name"`
	MoveSpeed    float64          `yaml:"move_speed"`
	JumpSpeed    float64          `yaml:"jump_speed"`
	Mass         float64          `yaml:"mass"`
	Friction     float64          `yaml:"friction"`
	Transform    TransformSpec    `yaml:"transform"`
	Collider     ColliderSpec     `yaml:"collider"`
	GroundSensor GroundSensorSpec `yaml:"ground_sensor"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Collider.Width <= 0 || spec.Collider.Height <= 0 {
		return nil, fmt.Errorf("prefabs: player.yaml: collider must have a positive size")
	}
	return &spec, nil
}

type PlatformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type LevelSpec struct {
	Name      string         `yaml:"name"`
	Gravity   float64        `yaml:"gravity"`
	Platforms []PlatformSpec `yaml:"platforms"`
}

func LoadLevelSpec() (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec]("level.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type VirtualCameraSpec struct {
	Name  string  `yaml:"name"`
	AxisX float64 `yaml:"axis_x"`
	AxisY float64 `yaml:"axis_y"`
}

type RigSpec struct {
	Name          string              `yaml:"name"`
	Mode          string              `yaml:"mode"`
	Sensitivity   float64             `yaml:"sensitivity"`
	RecenterSpeed float64             `yaml:"recenter_speed"`
	Cameras       []VirtualCameraSpec `yaml:"cameras"`
}

type CameraSpec struct {
	Target       string  `yaml:"target"`
	Zoom         float64 `yaml:"zoom"`
	Smoothness   float64 `yaml:"smoothness"`
	LookDistance float64 `yaml:"look_distance"`
}

type StateNamesSpec struct {
	Unlocked []string `yaml:"unlocked"`
	Locked   []string `yaml:"locked"`
}

type CameraModeSpec struct {
	Name        string         `yaml:"name"`
	InitialMode string         `yaml:"initial_mode"`
	RecenterRig string         `yaml:"recenter_rig"`
	Script      string         `yaml:"script"`
	States      StateNamesSpec `yaml:"states"`
	Rigs        []RigSpec      `yaml:"rigs"`
	Camera      CameraSpec     `yaml:"camera"`
}

// Initial parses InitialMode.
func (s *CameraModeSpec) Initial() (camera.Mode, error) {
	return camera.ParseMode(s.InitialMode)
}

// Validate checks rig modes and that each mode has exactly one rig.
func (s *CameraModeSpec) Validate() error {
	var seen [2]int
	for _, r := range s.Rigs {
		m, err := camera.ParseMode(r.Mode)
		if err != nil {
			return fmt.Errorf("prefabs: rig %q: %w", r.Name, err)
		}
		seen[m]++
	}
	for m, n := range seen {
		if n != 1 {
			return fmt.Errorf("prefabs: mode %s needs exactly one rig, found %d", camera.Mode(m), n)
		}
	}
	if _, err := s.Initial(); err != nil {
		return fmt.Errorf("prefabs: initial_mode: %w", err)
	}
	return nil
}

func LoadCameraModeSpec() (*CameraModeSpec, error) {
	spec, err := LoadSpec[CameraModeSpec]("camera_mode.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}
