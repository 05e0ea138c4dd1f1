package metadata

import (
	"fmt"

	"github.com/spaghettifunk/animotion/engine/core"
)

/** @brief The name of the default material. */
const DefaultMaterialName string = "default"

/**
 * @brief Configuration of a single pass, as authored in a material file.
 */
type PassConfig struct {
	/** @brief The reflection data of the pass shader. */
	Shader ShaderInfo `toml:"shader"`
	/** @brief Authored properties, keyed by uniform name. */
	Properties map[string]*PassProperty `toml:"properties"`
}

/**
 * @brief Material configuration typically loaded from
 * a file or created in code to load a material from.
 */
type MaterialConfig struct {
	/** @brief The name of the material. */
	Name string `toml:"name"`
	/** @brief Indicates if the material should be automatically released when no references to it remain. */
	AutoRelease bool `toml:"autorelease"`
	/** @brief The passes of the material, in render order. */
	Passes []PassConfig `toml:"passes"`
}

/**
 * @brief A material, which is a named, ordered list of passes.
 */
type Material struct {
	/** @brief The material id. */
	ID uint32
	/** @brief The material generation. Incremented every time the material is changed. */
	Generation uint32
	/** @brief The material name. */
	Name string
	/** @brief The passes of the material. */
	Passes []MaterialPass
}

// NewMaterial creates a material from its configuration, building every pass.
func NewMaterial(config *MaterialConfig) (*Material, error) {
	m := &Material{
		ID:         InvalidID,
		Generation: InvalidID,
		Name:       config.Name,
		Passes:     make([]MaterialPass, 0, len(config.Passes)),
	}
	for i := range config.Passes {
		p, err := NewPass(&config.Passes[i].Shader, config.Passes[i].Properties)
		if err != nil {
			return nil, fmt.Errorf("material '%s' pass %d: %w", config.Name, i, err)
		}
		m.Passes = append(m.Passes, p)
	}
	return m, nil
}

// GetPass returns the pass at the given index.
func (m *Material) GetPass(index int) (MaterialPass, error) {
	if index < 0 || index >= len(m.Passes) {
		return nil, fmt.Errorf("%w: material '%s' has %d passes, requested %d", core.ErrPassOutOfRange, m.Name, len(m.Passes), index)
	}
	return m.Passes[index], nil
}
