package cache

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const pageTTL = 1 * time.Hour

// PageCache keeps fetched results pages in Redis for an hour, so re-running
// the same search does not hammer the upstream again.
type PageCache struct {
	Client *redis.Client
}

var whitespace = regexp.MustCompile(`\s+`)

func pageKey(term string, page int) string {
	term = strings.ToLower(strings.TrimSpace(term))
	term = whitespace.ReplaceAllString(term, " ")
	return fmt.Sprintf("amz:pages:%s:%d", term, page)
}

func (c *PageCache) Get(ctx context.Context, term string, page int) (string, bool) {
	val, err := c.Client.Get(ctx, pageKey(term, page)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *PageCache) Put(ctx context.Context, term string, page int, html string) error {
	return c.Client.Set(ctx, pageKey(term, page), html, pageTTL).Err()
}
