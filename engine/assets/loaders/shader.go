package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/navview/engine/renderer/metadata"
)

const ShaderExtension = ".glsl"

type ShaderLoader struct{}

// Load reads a GLSL stage. Data is the source text.
func (sl *ShaderLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if assetType != metadata.ResourceTypeShader {
		return nil, fmt.Errorf("shader loader cannot load `%s` resources", assetType)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("shader source `%s` is empty", path)
	}
	return &metadata.Resource{
		Name:     strings.TrimSuffix(filepath.Base(path), ShaderExtension),
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     string(data),
	}, nil
}

func (sl *ShaderLoader) Unload(*metadata.Resource) error {
	return nil
}
