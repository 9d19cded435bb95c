package assets

import "github.com/spaghettifunk/navview/engine/renderer/metadata"

type Loader interface {
	// Load reads path into a resource, Data depending on the loader.
	Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error)
	Unload(*metadata.Resource) error
}
