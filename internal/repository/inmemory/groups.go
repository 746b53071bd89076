package inmemory

import (
	"sync"
	"time"

	groupdomain "chores-app-go/internal/domain/group"
)

type GroupCache struct {
	mu    sync.RWMutex
	items map[int64]groupItem
	now   func() time.Time
}

type groupItem struct {
	value     groupdomain.Group
	expiresAt time.Time
}

func NewGroupCache() *GroupCache {
	return &GroupCache{
		items: make(map[int64]groupItem),
		now:   time.Now,
	}
}

func (c *GroupCache) Get(groupID int64) (*groupdomain.Group, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[groupID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[groupID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, groupID)
		}
		c.mu.Unlock()
		return nil, false
	}

	value := item.value
	return &value, true
}

func (c *GroupCache) Set(group *groupdomain.Group, ttl time.Duration) {
	if group == nil || ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.items[group.ID] = groupItem{
		value:     *group,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *GroupCache) Clear() {
	c.mu.Lock()
	c.items = make(map[int64]groupItem)
	c.mu.Unlock()
}
