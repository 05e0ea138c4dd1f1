package assets

import "github.com/spaghettifunk/animotion/engine/renderer/metadata"

// Loader turns the file of one asset type into a resource. The concrete value
// in Resource.Data depends on the loader: *animation.Clip for clips,
// *metadata.Material for materials, *metadata.Texture for images.
type Loader interface {
	Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error)
	Unload(*metadata.Resource) error
}
