package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/animotion/engine/assets/loaders"
	"github.com/spaghettifunk/animotion/engine/containers"
	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

type AssetInfo struct {
	// Path is relative to the asset directory, always slash separated.
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	watching bool
	// paths of assets created, written or removed since the last Changes call
	changes *containers.RingQueue[string]
}

const maxPendingChanges = 256

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		fsnotify: fsWatch,
		changes:  containers.NewRingQueue[string](maxPendingChanges),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

// Initialize indexes every known asset below assetsDir and keeps the index
// current while files are created, written or removed.
func (am *AssetManager) Initialize(assetsDir string) error {
	root, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	am.root = root

	// Register loaders
	am.RegisterLoader(metadata.ResourceTypeAnimationClip, &loaders.ClipLoader{})
	am.RegisterLoader(metadata.ResourceTypeMaterial, &loaders.MaterialLoader{})
	am.RegisterLoader(metadata.ResourceTypeImage, &loaders.TextureLoader{})

	if err := am.addRecursive(root); err != nil {
		return err
	}
	am.mutex.Lock()
	am.watching = true
	am.mutex.Unlock()
	go am.start()

	core.LogInfo("asset manager watching '%s' (%d assets)", root, len(am.Assets()))
	return nil
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset watcher already closed")
	}
	return am.watchRecursive(name, false)
}

// RegisterLoader sets the loader of an asset type, replacing any previous one.
func (am *AssetManager) RegisterLoader(assetType metadata.ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

// Assets returns the indexed assets ordered by path.
func (am *AssetManager) Assets() []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	infos := make([]AssetInfo, 0, len(am.assets))
	for _, info := range am.assets {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Path < infos[j].Path })
	return infos
}

func (am *AssetManager) Lookup(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[filepath.ToSlash(name)]
	return info, ok
}

// Changes drains the paths of assets touched on disk since the previous call,
// oldest first. Only the most recent changes are kept when nobody polls.
func (am *AssetManager) Changes() []string {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	paths := make([]string, 0, am.changes.Len())
	for !am.changes.IsEmpty() {
		p, _ := am.changes.Dequeue()
		paths = append(paths, p)
	}
	return paths
}

// LoadAsset loads the asset with the given path, relative to the asset directory.
func (am *AssetManager) LoadAsset(name string, params interface{}) (*metadata.Resource, error) {
	key := filepath.ToSlash(name)

	am.mutex.Lock()
	asset, exists := am.assets[key]
	if exists {
		// Update the loaded time
		asset.LastLoaded = time.Now()
		am.assets[key] = asset
	}
	loader, loaderExists := am.loaders[asset.Type]
	am.mutex.Unlock()

	if !exists {
		err := fmt.Errorf("%w: %s", core.ErrAssetNotFound, name)
		core.LogError(err.Error())
		return nil, err
	}
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %d", asset.Type)
	}

	res, err := loader.Load(filepath.Join(am.root, filepath.FromSlash(key)), asset.Type, params)
	if err != nil {
		core.LogError("failed to load asset '%s': %s", name, err)
		return nil, err
	}
	core.LogDebug("asset '%s' loaded", name)
	return res, nil
}

func (am *AssetManager) UnloadAsset(name string, res *metadata.Resource) error {
	info, ok := am.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrAssetNotFound, name)
	}
	am.mutex.RLock()
	loader, exists := am.loaders[info.Type]
	am.mutex.RUnlock()
	if !exists {
		return nil
	}
	return loader.Unload(res)
}

// Watching reports whether the asset directory is currently being watched.
func (am *AssetManager) Watching() bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return am.watching && !am.isClosed
}

// Shutdown stops watching the asset directory.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	watching := am.watching
	am.mutex.Unlock()

	if !watching {
		return am.fsnotify.Close()
	}
	close(am.done)
	<-am.stopped
	return nil
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
			core.LogError(err.Error())

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
				core.LogWarn("unable to watch '%s': %s", e.Name, err)
			}
		}
		return
	}
	// Handle create or modify events
	if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		if key, ok := am.handleFileEvent(e.Name); ok {
			am.recordChange(key)
		}
	}
	// Can't stat a deleted path, it is dropped from the index and the watch list
	if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		if key, ok := am.removeAsset(e.Name); ok {
			am.recordChange(key)
		}
		_ = am.fsnotify.Remove(e.Name)
	}
}

func (am *AssetManager) recordChange(key string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.changes.Push(key)
}

// watchRecursive adds all directories under the given one to the watch list.
// Files created before the watch is added are picked up by the walk itself.
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

func (am *AssetManager) relative(path string) (string, bool) {
	rel, err := filepath.Rel(am.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) (string, bool) {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return "", false
	}
	key, ok := am.relative(path)
	if !ok {
		return "", false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[key] = AssetInfo{
		Path: key,
		Type: assetType,
	}
	return key, true
}

// Remove the asset, or every asset below a removed directory, from the index
func (am *AssetManager) removeAsset(path string) (string, bool) {
	key, ok := am.relative(path)
	if !ok {
		return "", false
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, key)
	for k := range am.assets {
		if strings.HasPrefix(k, key+"/") {
			delete(am.assets, k)
		}
	}
	return key, true
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".clip":
		return metadata.ResourceTypeAnimationClip
	case ".mat":
		return metadata.ResourceTypeMaterial
	case ".png", ".jpg", ".jpeg", ".bmp", ".webp":
		return metadata.ResourceTypeImage
	default:
		return metadata.ResourceTypeNone
	}
}
