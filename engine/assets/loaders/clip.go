package loaders

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/animotion/engine/animation"
	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

// PathKind names a target path variant in a clip file.
type PathKind string

const (
	PathKindProperty  PathKind = "property"
	PathKindIndex     PathKind = "index"
	PathKindHierarchy PathKind = "hierarchy"
	PathKindComponent PathKind = "component"
	PathKindCustom    PathKind = "custom"
)

// PathConfig is one step of a track path as authored in a clip file.
type PathConfig struct {
	Kind  PathKind `toml:"kind"`
	Value string   `toml:"value"`
	Index int      `toml:"index"`
	Tag   string   `toml:"tag"`
}

type TrackConfig struct {
	Path    []PathConfig                        `toml:"path"`
	Uniform *animation.UniformCurveValueAdapter `toml:"uniform"`
}

// ClipConfig is the on-disk form of an animation clip.
type ClipConfig struct {
	Name     string             `toml:"name"`
	Duration float64            `toml:"duration"`
	WrapMode animation.WrapMode `toml:"wrap_mode"`
	Tracks   []TrackConfig      `toml:"tracks"`
}

type ClipLoader struct{}

func (cl *ClipLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	clip, err := parseClip(data)
	if err != nil {
		return nil, fmt.Errorf("clip file '%s': %w", path, err)
	}
	if clip.Name == "" {
		clip.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &metadata.Resource{
		Name:     clip.Name,
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     clip,
	}, nil
}

func parseClip(data []byte) (*animation.Clip, error) {
	var config ClipConfig
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrConfiguration, err)
	}
	return config.Clip()
}

// Clip validates the configuration and builds the clip it describes.
func (c *ClipConfig) Clip() (*animation.Clip, error) {
	if c.Duration < 0 {
		return nil, fmt.Errorf("%w: duration must be a non-negative value", core.ErrConfiguration)
	}

	clip := &animation.Clip{
		Name:     c.Name,
		Duration: c.Duration,
		WrapMode: c.WrapMode,
		Tracks:   make([]*animation.Track, 0, len(c.Tracks)),
	}
	for i, tc := range c.Tracks {
		track := &animation.Track{Modifiers: make([]animation.TargetPath, 0, len(tc.Path))}
		for j, pc := range tc.Path {
			p, err := pc.TargetPath()
			if err != nil {
				return nil, fmt.Errorf("track %d path %d: %w", i, j, err)
			}
			track.Modifiers = append(track.Modifiers, p)
		}
		if tc.Uniform != nil {
			if tc.Uniform.UniformName == "" {
				return nil, fmt.Errorf("%w: track %d uniform adapter requires a uniform_name", core.ErrConfiguration, i)
			}
			track.Adapter = tc.Uniform
		}
		if len(track.Modifiers) == 0 && track.Adapter == nil {
			return nil, fmt.Errorf("%w: track %d has neither path nor uniform", core.ErrConfiguration, i)
		}
		clip.Tracks = append(clip.Tracks, track)
	}
	return clip, nil
}

// TargetPath converts the authored step into its path variant.
func (pc PathConfig) TargetPath() (animation.TargetPath, error) {
	switch pc.Kind {
	case PathKindProperty:
		if pc.Value == "" {
			return nil, fmt.Errorf("%w: property path requires a value", core.ErrConfiguration)
		}
		return animation.PropertyPath(pc.Value), nil
	case PathKindIndex:
		if pc.Index < 0 {
			return nil, fmt.Errorf("%w: index path requires a non-negative index", core.ErrConfiguration)
		}
		return animation.IndexPath(pc.Index), nil
	case PathKindHierarchy:
		return animation.NewHierarchyPath(pc.Value), nil
	case PathKindComponent:
		if pc.Value == "" {
			return nil, fmt.Errorf("%w: component path requires a value", core.ErrConfiguration)
		}
		return animation.NewComponentPath(pc.Value), nil
	case PathKindCustom:
		if pc.Tag == "" {
			return nil, fmt.Errorf("%w: custom path requires a tag", core.ErrConfiguration)
		}
		return animation.CustomPath{Tag: pc.Tag, Arg: pc.Value}, nil
	default:
		return nil, fmt.Errorf("%w: unknown path kind '%s'", core.ErrConfiguration, pc.Kind)
	}
}

func (cl *ClipLoader) Unload(*metadata.Resource) error {
	return nil
}
