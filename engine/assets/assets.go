package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/navview/engine/assets/loaders"
	"github.com/spaghettifunk/navview/engine/core"
	"github.com/spaghettifunk/navview/engine/renderer/metadata"
)

const shadersDir = "shaders"

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// AssetManager indexes the files under the assets directory, loads them
// through the registered loaders and re-parses the watched config whenever
// it changes on disk.
type AssetManager struct {
	assetsDir string
	assets    map[string]AssetInfo
	loaders   map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool

	configPath    string
	configChanges chan *loaders.Config
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:        make(map[string]AssetInfo),
		loaders:       make(map[metadata.ResourceType]Loader),
		fsnotify:      fsWatch,
		done:          make(chan struct{}),
		stopped:       make(chan struct{}),
		configChanges: make(chan *loaders.Config, 1),
	}

	// Register loaders
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeConfig, &loaders.ConfigLoader{})

	return am, nil
}

// Initialize indexes and starts watching assetsDir and everything below it.
func (am *AssetManager) Initialize(assetsDir string) error {
	abs, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	am.assetsDir = abs

	if err := am.addRecursive(abs); err != nil {
		return err
	}

	go am.start()
	return nil
}

// Shutdown stops the watcher. It is safe to call more than once.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	if am.assetsDir == "" {
		// never started
		return am.fsnotify.Close()
	}
	<-am.stopped
	return nil
}

// WatchConfig makes every write of the config at path produce a freshly
// parsed *loaders.Config on ConfigChanges.
func (am *AssetManager) WatchConfig(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	am.configPath = abs
	// editors often replace the file, so the directory is watched
	return am.fsnotify.Add(filepath.Dir(abs))
}

// ConfigChanges delivers reloaded configs. Only the most recent one is kept
// until it is received.
func (am *AssetManager) ConfigChanges() <-chan *loaders.Config {
	return am.configChanges
}

// LoadConfig loads the config at path through the config loader.
func (am *AssetManager) LoadConfig(path string) (*loaders.Config, error) {
	res, err := am.load(path, metadata.ResourceTypeConfig, nil)
	if err != nil {
		return nil, err
	}
	return res.Data.(*loaders.Config), nil
}

// LoadShaderSource returns the GLSL source of a stage such as
// "geometry.vert", read from <assets>/shaders/geometry.vert.glsl.
func (am *AssetManager) LoadShaderSource(name string) (string, error) {
	path := filepath.Join(am.assetsDir, shadersDir, name+loaders.ShaderExtension)

	am.mutex.RLock()
	_, exists := am.assets[path]
	am.mutex.RUnlock()
	if !exists {
		return "", fmt.Errorf("asset not found: %s", path)
	}

	res, err := am.load(path, metadata.ResourceTypeShader, nil)
	if err != nil {
		return "", err
	}
	return res.Data.(string), nil
}

// Asset returns what is known about an indexed file.
func (am *AssetManager) Asset(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[path]
	return info, ok
}

func (am *AssetManager) load(path string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	loader, loaderExists := am.loaders[resourceType]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", resourceType)
	}

	res, err := loader.Load(path, resourceType, params)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       resourceType,
		LastLoaded: time.Now(),
	}
	am.mutex.Unlock()
	return res, nil
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	return am.watchRecursive(name, false)
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) handleEvent(e fsnotify.Event) {
	s, err := os.Stat(e.Name)
	if err == nil && s != nil && s.IsDir() {
		if e.Op&fsnotify.Create != 0 {
			if err := am.watchRecursive(e.Name, false); err != nil {
				core.LogWarn("failed to watch `%s`: %s", e.Name, err)
			}
		}
		return
	}

	// Handle create or modify events
	if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		am.handleFileEvent(e.Name)

		am.mutex.RLock()
		isConfig := am.configPath != "" && filepath.Clean(e.Name) == am.configPath
		am.mutex.RUnlock()
		if isConfig {
			am.reloadConfig(e.Name)
		}
	}
	// Can't stat a deleted file, so drop it from the index whatever it was.
	if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		am.removeAsset(e.Name)
	}
}

func (am *AssetManager) reloadConfig(path string) {
	cfg, err := am.LoadConfig(path)
	if err != nil {
		// half written files show up here, the next write brings a full one
		core.LogWarn("config reload failed: %s", err)
		return
	}

	// keep only the newest
	select {
	case <-am.configChanges:
	default:
	}
	am.configChanges <- cfg
	core.LogInfo("config `%s` reloaded", path)
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files found.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	info := am.assets[path]
	info.Path = path
	info.Type = assetType
	am.assets[path] = info
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case loaders.ConfigExtension:
		return metadata.ResourceTypeConfig
	case loaders.ShaderExtension:
		return metadata.ResourceTypeShader
	default:
		return metadata.ResourceTypeNone
	}
}
