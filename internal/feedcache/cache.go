package feedcache

import (
	"Guildboard/internal/api/dto"
	"sync"
)

// Key 标识一页已缓存的信息流
type Key struct {
	CategoryID uint64
	Sort       string
	Page       int
	PageSize   int
}

// Cache 是信息流页的客户端缓存。
// 变更确认后通过帖子 id 二级索引做跨页定点修补，
// 建帖走粗粒度失效；在途拉取按键记代际，过期结果直接丢弃。
type Cache struct {
	mu    sync.Mutex
	pages map[Key]*dto.FeedPageDTO
	index map[uint64]map[Key]struct{} // post id → 含有该帖的缓存页
	gens  map[Key]uint64
}

func New() *Cache {
	return &Cache{
		pages: make(map[Key]*dto.FeedPageDTO),
		index: make(map[uint64]map[Key]struct{}),
		gens:  make(map[Key]uint64),
	}
}

// Begin 登记一次新的拉取并返回代际号，更早的在途结果随之作废
func (c *Cache) Begin(key Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[key]++
	return c.gens[key]
}

// Complete 提交拉取结果。代际不是最新说明结果已被后来的拉取取代，丢弃并返回 false。
func (c *Cache) Complete(key Key, gen uint64, page *dto.FeedPageDTO) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gens[key] != gen {
		return false
	}
	c.putLocked(key, page)
	return true
}

func (c *Cache) Get(key Key) (*dto.FeedPageDTO, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	page, ok := c.pages[key]
	return page, ok
}

// InvalidateCategory 建帖后对该分类的所有缓存页做粗粒度失效，
// 全站视图（CategoryID 为 0）同样包含新帖，一并失效。
func (c *Cache) InvalidateCategory(categoryID uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.pages {
		if key.CategoryID == categoryID || key.CategoryID == 0 {
			c.dropLocked(key)
		}
	}
}

// ApplyReaction 跨页修补点赞计数与 liked 状态，返回回滚函数
func (c *Cache) ApplyReaction(postID uint64, delta int, liked bool) func() {
	return c.patch(postID, func(item *dto.PostDTO) func() {
		prevCount, prevLiked := item.ReactionsCount, item.IsLiked
		item.ReactionsCount += delta
		if item.ReactionsCount < 0 {
			item.ReactionsCount = 0
		}
		item.IsLiked = liked
		return func() {
			item.ReactionsCount = prevCount
			item.IsLiked = prevLiked
		}
	})
}

// ApplyRead 跨页把帖子标记为已读，返回回滚函数
func (c *Cache) ApplyRead(postID uint64) func() {
	return c.patch(postID, func(item *dto.PostDTO) func() {
		prev := item.IsRead
		item.IsRead = true
		return func() {
			item.IsRead = prev
		}
	})
}

// ApplyPin 跨页修补置顶状态，返回回滚函数。
// 已缓存页不重排，下一次拉取自然回到正确顺序。
func (c *Cache) ApplyPin(postID uint64, pinned bool) func() {
	return c.patch(postID, func(item *dto.PostDTO) func() {
		prev := item.Pinned
		item.Pinned = pinned
		return func() {
			item.Pinned = prev
		}
	})
}

// patch 按二级索引定位所有含该帖的缓存页并就地修补，开销与命中页数成正比
func (c *Cache) patch(postID uint64, apply func(*dto.PostDTO) func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var undos []func()
	for key := range c.index[postID] {
		page, ok := c.pages[key]
		if !ok {
			continue
		}
		for _, item := range page.List {
			if item.ID == postID {
				undos = append(undos, apply(item))
			}
		}
	}

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for _, undo := range undos {
			undo()
		}
	}
}

func (c *Cache) putLocked(key Key, page *dto.FeedPageDTO) {
	if _, ok := c.pages[key]; ok {
		c.dropLocked(key)
	}
	c.pages[key] = page
	for _, item := range page.List {
		keys, ok := c.index[item.ID]
		if !ok {
			keys = make(map[Key]struct{})
			c.index[item.ID] = keys
		}
		keys[key] = struct{}{}
	}
}

func (c *Cache) dropLocked(key Key) {
	page, ok := c.pages[key]
	if !ok {
		return
	}
	delete(c.pages, key)
	for _, item := range page.List {
		if keys, ok := c.index[item.ID]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.index, item.ID)
			}
		}
	}
}
