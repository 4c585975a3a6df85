// Package cache provides a generic LRU cache for shared render resources.
//
//	c := cache.New[string, *resource.StaticMesh](64)
//	m := c.GetOrCreate("box", func() *resource.StaticMesh { return resource.NewBox(1, 1, 1) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
