// Package cache provides a small generic, thread-safe LRU cache.
//
// It backs memoization on hot paths such as classifying the User-Agent of
// every request hitting the bundle origin. When the cache is full the least
// recently used entry is dropped.
//
//	c := cache.NewLRUCache[string, target.Result](4096)
//	if res, ok := c.Get(ua); ok {
//	    return res
//	}
//	res := classifier.Detect(ua)
//	c.Put(ua, res)
//
// Get and Put both count as a use. All operations are O(1).
package cache
