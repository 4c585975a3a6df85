package resource

import (
	"fmt"
	"slices"
	"sync"
)

// Library is an in-memory Group.
//
// Asset loaders running on worker goroutines may register resources while the
// rendering goroutine resolves names, so all methods are safe for concurrent use.
type Library struct {
	mu        sync.RWMutex
	meshes    map[string]Mesh
	textures  map[string]Texture
	frameSets map[string]*FrameSet
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		meshes:    make(map[string]Mesh),
		textures:  make(map[string]Texture),
		frameSets: make(map[string]*FrameSet),
	}
}

// AddMesh registers a mesh under name.
func (l *Library) AddMesh(name string, m Mesh) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, dup := l.meshes[name]; dup {
		return fmt.Errorf("%w: mesh %q", ErrDuplicate, name)
	}
	l.meshes[name] = m
	return nil
}

// AddTexture registers a texture under name.
func (l *Library) AddTexture(name string, t Texture) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, dup := l.textures[name]; dup {
		return fmt.Errorf("%w: texture %q", ErrDuplicate, name)
	}
	l.textures[name] = t
	return nil
}

// AddFrameSet registers a frame set under its Name.
func (l *Library) AddFrameSet(f *FrameSet) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, dup := l.frameSets[f.Name]; dup {
		return fmt.Errorf("%w: frame set %q", ErrDuplicate, f.Name)
	}
	l.frameSets[f.Name] = f
	return nil
}

// Mesh returns the named mesh.
func (l *Library) Mesh(name string) (Mesh, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.meshes[name]
	if !ok {
		return nil, fmt.Errorf("%w: mesh %q", ErrNotFound, name)
	}
	return m, nil
}

// Texture returns the named texture.
func (l *Library) Texture(name string) (Texture, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.textures[name]
	if !ok {
		return nil, fmt.Errorf("%w: texture %q", ErrNotFound, name)
	}
	return t, nil
}

// FrameSet returns the named frame set.
func (l *Library) FrameSet(name string) (*FrameSet, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	f, ok := l.frameSets[name]
	if !ok {
		return nil, fmt.Errorf("%w: frame set %q", ErrNotFound, name)
	}
	return f, nil
}

// MeshNames returns the registered mesh names in sorted order.
func (l *Library) MeshNames() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.meshes))
	for name := range l.meshes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var _ Group = (*Library)(nil)
