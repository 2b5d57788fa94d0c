package target

import "github.com/dmitrymomot/userflow-bootstrap/pkg/cache"

// Detector is satisfied by *Classifier and *CachedClassifier.
type Detector interface {
	Classify(ua string) Tier
	Detect(ua string) Result
}

// CachedClassifier memoizes Detect results per user agent string.
// Safe for concurrent use.
type CachedClassifier struct {
	next  *Classifier
	cache *cache.LRUCache[string, Result]
}

// NewCachedClassifier wraps c with an LRU of the given capacity.
// It panics if size is not positive.
func NewCachedClassifier(c *Classifier, size int) *CachedClassifier {
	if c == nil {
		c = Default()
	}
	return &CachedClassifier{next: c, cache: cache.NewLRUCache[string, Result](size)}
}

func (c *CachedClassifier) Classify(ua string) Tier { return c.Detect(ua).Tier }

func (c *CachedClassifier) Detect(ua string) Result {
	if res, ok := c.cache.Get(ua); ok {
		return res
	}
	res := c.next.Detect(ua)
	c.cache.Put(ua, res)
	return res
}

// Len returns the number of cached user agents.
func (c *CachedClassifier) Len() int { return c.cache.Len() }
