package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

type TextureLoader struct{}

func (tl *TextureLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	p := &metadata.ImageResourceParams{}
	if params != nil {
		typed, ok := params.(*metadata.ImageResourceParams)
		if !ok {
			return nil, fmt.Errorf("failed to cast params in texture loader, got %T", params)
		}
		p = typed
	}

	// Open and decode the texture image file
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("texture file '%s': %w", path, err)
	}

	texture := newTexture(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), img, p)
	texture.CreateView(nil)

	return &metadata.Resource{
		Name:     texture.Name,
		FullPath: path,
		DataSize: uint64(len(texture.Pixels)),
		Data:     texture,
	}, nil
}

// newTexture converts any decoded image to tightly packed RGBA8 pixels.
func newTexture(name string, img image.Image, params *metadata.ImageResourceParams) *metadata.Texture {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	if params.FlipY {
		flipRows(rgba)
	}

	texture := &metadata.Texture{
		ID:           metadata.InvalidID,
		TextureType:  metadata.TextureType2d,
		Width:        uint32(rgba.Rect.Dx()),
		Height:       uint32(rgba.Rect.Dy()),
		ChannelCount: 4,
		Generation:   metadata.InvalidID,
		Name:         name,
		Pixels:       rgba.Pix,
		Sampler:      metadata.DefaultSamplerState(),
	}
	if params.Sampler != nil {
		texture.Sampler = *params.Sampler
	}
	for i := 3; i < len(rgba.Pix); i += 4 {
		if rgba.Pix[i] < 255 {
			texture.Flags |= metadata.TextureFlagBits(metadata.TextureFlagHasTransparency)
			break
		}
	}
	return texture
}

func flipRows(img *image.RGBA) {
	height := img.Rect.Dy()
	row := make([]uint8, img.Stride)
	for y := 0; y < height/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(height-1-y)*img.Stride : (height-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

func (tl *TextureLoader) Unload(res *metadata.Resource) error {
	if res == nil {
		return nil
	}
	if texture, ok := res.Data.(*metadata.Texture); ok {
		texture.Pixels = nil
		texture.View = nil
	}
	return nil
}
