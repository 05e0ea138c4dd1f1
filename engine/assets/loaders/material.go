package loaders

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

type MaterialLoader struct{}

func (ml *MaterialLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	mCfg, err := parseMaterial(data)
	if err != nil {
		return nil, fmt.Errorf("material file '%s': %w", path, err)
	}
	material, err := metadata.NewMaterial(mCfg)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     mCfg.Name,
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     material,
	}, nil
}

func parseMaterial(data []byte) (*metadata.MaterialConfig, error) {
	materialConfig := &metadata.MaterialConfig{}
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(materialConfig); err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrConfiguration, err)
	}
	// Perform validation
	if err := validateMaterial(materialConfig); err != nil {
		return nil, err
	}
	return materialConfig, nil
}

func validateMaterial(material *metadata.MaterialConfig) error {
	if material.Name == "" {
		return fmt.Errorf("%w: material name is required", core.ErrConfiguration)
	}
	if len(material.Passes) == 0 {
		return fmt.Errorf("%w: material '%s' requires at least one pass", core.ErrConfiguration, material.Name)
	}

	for i, pass := range material.Passes {
		if pass.Shader.Name == "" {
			return fmt.Errorf("%w: pass %d shader name is required", core.ErrConfiguration, i)
		}
		if err := pass.Shader.CheckHandleRange(); err != nil {
			return fmt.Errorf("pass %d: %w", i, err)
		}
		for _, sampler := range pass.Shader.Samplers {
			if !sampler.Type.IsSampler() {
				return fmt.Errorf("%w: sampler '%s' of shader '%s' has non sampler type %s", core.ErrConfiguration, sampler.Name, pass.Shader.Name, sampler.Type)
			}
		}
		for name, prop := range pass.Properties {
			if prop == nil {
				return fmt.Errorf("%w: pass %d property '%s' is empty", core.ErrConfiguration, i, name)
			}
			if _, ok := pass.Shader.FindMember(name); ok {
				continue
			}
			sampler, ok := pass.Shader.FindSampler(name)
			if !ok {
				return fmt.Errorf("%w: pass %d property '%s' is not declared by shader '%s'", core.ErrConfiguration, i, name, pass.Shader.Name)
			}
			// Check sampler defaults name a builtin texture
			if prop.HasValue() && !isValidTextureName(prop.Value) {
				return fmt.Errorf("%w: invalid default texture for sampler '%s': %v", core.ErrConfiguration, sampler.Name, prop.Value)
			}
		}
	}
	return nil
}

// Texture defaults are written without the suffix, "black" stands for "black-texture".
func isValidTextureName(value interface{}) bool {
	name, ok := value.(string)
	return ok && len(name) > 0 && !strings.HasSuffix(name, metadata.TextureNameSuffix)
}

func (ml *MaterialLoader) Unload(*metadata.Resource) error {
	return nil
}
