package systems

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

type BuiltinResourceSystemConfig struct {
	/** @brief The maximum number of builtin resources held at once. */
	MaxResourceCount uint32 `toml:"max_resource_count"`
}

// BuiltinResourceSystem is the process wide registry of engine resources that
// exist without any asset on disk, such as the fallback textures bound to
// samplers that have nothing else to show.
type BuiltinResourceSystem struct {
	Config *BuiltinResourceSystemConfig

	mutex     sync.RWMutex
	resources map[string]interface{}
}

func NewBuiltinResourceSystem(config *BuiltinResourceSystemConfig) (*BuiltinResourceSystem, error) {
	if config == nil || config.MaxResourceCount == 0 {
		err := fmt.Errorf("%w: func NewBuiltinResourceSystem - config.MaxResourceCount must be > 0", core.ErrConfiguration)
		core.LogError(err.Error())
		return nil, err
	}
	return &BuiltinResourceSystem{
		Config:    config,
		resources: make(map[string]interface{}, config.MaxResourceCount),
	}, nil
}

type builtinColor struct {
	name string
	rgba [4]uint8
}

var builtinColors = []builtinColor{
	{name: "black", rgba: [4]uint8{0, 0, 0, 255}},
	{name: "white", rgba: [4]uint8{255, 255, 255, 255}},
	{name: "grey", rgba: [4]uint8{128, 128, 128, 255}},
}

const (
	checkerboardDimension uint32 = 256
	solidDimension        uint32 = 16
	cubeFaceCount         uint32 = 6
)

// Initialize creates the builtin textures. They are generated in code so the
// engine can bind something to every sampler without any asset on disk.
func (brs *BuiltinResourceSystem) Initialize() error {
	textures := []*metadata.Texture{
		checkerboardTexture("default", metadata.TextureType2d),
		checkerboardTexture("default", metadata.TextureTypeCube),
		solidTexture("normal", metadata.TextureType2d, [4]uint8{128, 128, 255, 255}),
	}
	for _, c := range builtinColors {
		textures = append(textures,
			solidTexture(c.name, metadata.TextureType2d, c.rgba),
			solidTexture(c.name, metadata.TextureTypeCube, c.rgba),
		)
	}

	for _, t := range textures {
		if _, err := brs.Insert(t.Name, t); err != nil {
			return err
		}
	}
	core.LogInfo("builtin resource system initialized with %d textures", len(textures))
	return nil
}

// Get returns the builtin resource registered under name.
func (brs *BuiltinResourceSystem) Get(name string) (interface{}, bool) {
	brs.mutex.RLock()
	defer brs.mutex.RUnlock()

	res, ok := brs.resources[name]
	return res, ok
}

func (brs *BuiltinResourceSystem) GetTexture(name string) (*metadata.Texture, bool) {
	res, ok := brs.Get(name)
	if !ok {
		return nil, false
	}
	t, ok := res.(*metadata.Texture)
	return t, ok
}

// Insert registers res under name and returns the value now stored there.
// Inserting a name that already exists keeps the first value.
func (brs *BuiltinResourceSystem) Insert(name string, res interface{}) (interface{}, error) {
	if name == "" || res == nil {
		err := fmt.Errorf("%w: func Insert - builtin resource requires a name and a value", core.ErrConfiguration)
		core.LogError(err.Error())
		return nil, err
	}

	brs.mutex.Lock()
	defer brs.mutex.Unlock()

	if existing, ok := brs.resources[name]; ok {
		return existing, nil
	}
	if uint32(len(brs.resources)) >= brs.Config.MaxResourceCount {
		err := fmt.Errorf("%w: builtin resource system is full, cannot insert '%s'", core.ErrConfiguration, name)
		core.LogError(err.Error())
		return nil, err
	}
	brs.resources[name] = res
	core.LogDebug("builtin resource '%s' registered", name)
	return res, nil
}

// Names returns the registered names in lexical order.
func (brs *BuiltinResourceSystem) Names() []string {
	brs.mutex.RLock()
	defer brs.mutex.RUnlock()

	names := make([]string, 0, len(brs.resources))
	for name := range brs.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (brs *BuiltinResourceSystem) Shutdown() error {
	brs.mutex.Lock()
	defer brs.mutex.Unlock()

	brs.resources = make(map[string]interface{}, brs.Config.MaxResourceCount)
	return nil
}

func builtinTextureName(name string, textureType metadata.TextureType) string {
	if textureType == metadata.TextureTypeCube {
		return name + "-cube" + metadata.TextureNameSuffix
	}
	return name + metadata.TextureNameSuffix
}

func newBuiltinTexture(name string, textureType metadata.TextureType, dimension uint32) *metadata.Texture {
	layers := uint32(1)
	if textureType == metadata.TextureTypeCube {
		layers = cubeFaceCount
	}
	t := &metadata.Texture{
		ID:           metadata.InvalidID,
		TextureType:  textureType,
		Name:         builtinTextureName(name, textureType),
		Width:        dimension,
		Height:       dimension,
		ChannelCount: 4,
		Generation:   metadata.InvalidID,
		Pixels:       make([]uint8, dimension*dimension*4*layers),
		Sampler:      metadata.DefaultSamplerState(),
	}
	t.CreateView(t.Name)
	return t
}

// checkerboardTexture builds a blue and white checkerboard, one pixel per square.
func checkerboardTexture(name string, textureType metadata.TextureType) *metadata.Texture {
	t := newBuiltinTexture(name, textureType, checkerboardDimension)
	pixelCount := checkerboardDimension * checkerboardDimension
	for i := range t.Pixels {
		t.Pixels[i] = 255
	}
	for index := uint32(0); index < uint32(len(t.Pixels))/4; index++ {
		row := (index % pixelCount) / checkerboardDimension
		col := index % checkerboardDimension
		if row%2 == col%2 {
			t.Pixels[index*4+0] = 0
			t.Pixels[index*4+1] = 0
		}
	}
	return t
}

func solidTexture(name string, textureType metadata.TextureType, rgba [4]uint8) *metadata.Texture {
	t := newBuiltinTexture(name, textureType, solidDimension)
	for i := 0; i < len(t.Pixels); i += 4 {
		copy(t.Pixels[i:i+4], rgba[:])
	}
	return t
}
