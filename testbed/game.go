package testbed

import (
	"fmt"
	gomath "math"

	"github.com/spaghettifunk/animotion/engine"
	"github.com/spaghettifunk/animotion/engine/animation"
	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/math"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
	"github.com/spaghettifunk/animotion/engine/scene"
)

const (
	materialAsset = "materials/sprite.mat"
	clipAsset     = "clips/pulse.clip"
	textureAsset  = "textures/frame.png"
)

// SpriteRenderer draws a node with a material.
type SpriteRenderer struct {
	Material *metadata.Material `anim:"material"`
}

func (*SpriteRenderer) TypeName() string { return "SpriteRenderer" }

// Light is a point light attached to a node.
type Light struct {
	Intensity float32   `anim:"intensity"`
	Color     math.Vec4 `anim:"color"`
}

func (*Light) TypeName() string { return "Light" }

type TestGame struct {
	*engine.Game
}

type gameState struct {
	root     *scene.Node
	player   *scene.Node
	material *metadata.Material
	frame    *metadata.Texture
	state    *animation.State

	// MaxFrames stops the game after that many frames, 0 runs until interrupted.
	maxFrames uint64
}

func NewTestGame(config *engine.Config, maxFrames uint64) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			Config: config,
			State:  &gameState{maxFrames: maxFrames},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnShutdown = tg.Shutdown
	tg.FnAssetsChanged = tg.AssetsChanged

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize(e *engine.Engine) error {
	core.LogInfo("initializing testbed...")
	s := g.state()

	res, err := e.Assets().LoadAsset(materialAsset, nil)
	if err != nil {
		return err
	}
	s.material = res.Data.(*metadata.Material)

	res, err = e.Assets().LoadAsset(textureAsset, nil)
	if err != nil {
		return err
	}
	s.frame = res.Data.(*metadata.Texture)

	s.root = scene.NewNode("world")
	s.player = scene.NewNode("player")
	s.root.AddChild(s.player)
	s.player.AddComponent(&SpriteRenderer{Material: s.material})
	s.player.AddComponent(&Light{Intensity: 1, Color: math.NewVec4(1, 1, 1, 1)})

	animations := e.Systems().Animations()
	if err := animations.RegisterPath("child", func(target interface{}, arg string) (interface{}, error) {
		node, ok := target.(*scene.Node)
		if !ok {
			return nil, fmt.Errorf("%w: child path expects a node, got %T", core.ErrTypeMismatch, target)
		}
		child := node.GetChildByName(arg)
		if child == nil {
			return nil, fmt.Errorf("%w: node '%s' has no child '%s'", core.ErrResolution, node.Name, arg)
		}
		return child, nil
	}); err != nil {
		return err
	}
	return g.playClip(e)
}

// playClip (re)loads the clip asset and plays it on the scene, replacing the
// state that was playing before.
func (g *TestGame) playClip(e *engine.Engine) error {
	s := g.state()
	res, err := e.Assets().LoadAsset(clipAsset, nil)
	if err != nil {
		return err
	}
	clip := res.Data.(*animation.Clip)

	animations := e.Systems().Animations()
	if s.state != nil {
		animations.Stop(s.state)
	}
	s.state, err = animations.Play(clip, s.root, animation.CurveSamplerFunc(g.sample))
	if err != nil {
		return err
	}
	if err := s.state.BindError(); err != nil {
		core.LogWarn("clip '%s' bound partially: %s", clip.Name, err)
	}
	core.LogInfo("playing '%s' with %d tracks", clip.Name, len(s.state.Bindings()))
	return nil
}

// AssetsChanged replays the clip when its file is edited. A clip that no
// longer parses keeps the previous one playing.
func (g *TestGame) AssetsChanged(e *engine.Engine, paths []string) error {
	for _, p := range paths {
		if p != clipAsset {
			continue
		}
		if _, ok := e.Assets().Lookup(clipAsset); !ok {
			core.LogWarn("clip '%s' was removed, keeping the current animation", clipAsset)
			return nil
		}
		if err := g.playClip(e); err != nil {
			core.LogWarn("clip '%s' not reloaded: %s", clipAsset, err)
		}
		return nil
	}
	return nil
}

// sample evaluates the demo curves. Tracks are matched by their position in
// the clip file.
func (g *TestGame) sample(track int, time float64) interface{} {
	phase := gomath.Sin(time * gomath.Pi)
	switch track {
	case 0:
		v := float32(0.5 + 0.5*phase)
		return math.NewVec4(v, 0.2, 1-v, 1)
	case 1:
		// first half shows the authored default, second half the frame texture
		if phase >= 0 {
			return nil
		}
		return g.state().frame
	case 2:
		return 1 + 0.5*phase
	default:
		return nil
	}
}

func (g *TestGame) Update(e *engine.Engine, deltaTime float64) error {
	s := g.state()
	if e.Frame()%30 == 0 {
		g.logPass(s)
	}
	if s.maxFrames > 0 && e.Frame()+1 >= s.maxFrames {
		e.Stop()
	}
	return nil
}

func (g *TestGame) logPass(s *gameState) {
	pass, err := s.material.GetPass(0)
	if err != nil {
		core.LogError(err.Error())
		return
	}
	p, ok := pass.(*metadata.Pass)
	if !ok {
		return
	}
	tint, _ := p.GetHandle("tint")
	value, _ := p.Uniform(tint)
	texture := "none"
	if view := p.TextureViewAt(1); view != nil {
		texture = view.Texture.Name
	}
	light := s.player.GetComponent("Light").(*Light)
	core.LogInfo("t=%.2fs tint=%v mainTexture=%s intensity=%.2f", s.state.Time(), value, texture, light.Intensity)
}

func (g *TestGame) Shutdown(e *engine.Engine) error {
	s := g.state()
	if s.state != nil {
		e.Systems().Animations().Stop(s.state)
	}
	core.LogInfo("testbed shut down")
	return nil
}
