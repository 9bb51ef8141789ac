// Package lru provides a small generic least-recently-used cache.
//
// Cache is not safe for concurrent use; owners guard it with their own
// mutex. It is used by the raster backends to bound parsed fonts and sized
// faces:
//
//	faces := lru.New[faceKey, font.Face](32, func(_ faceKey, f font.Face) { f.Close() })
//	if f, ok := faces.Get(key); ok {
//	    return f
//	}
//	faces.Add(key, newFace())
package lru
