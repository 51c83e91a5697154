package ecs

// Cursor walks a View one entity at a time:
//
//	cursor := view.Cursor()
//	for cursor.Next() {
//		id := cursor.Entity()
//	}
//
// The manager is locked from the first Next until Next returns false. A loop that stops early
// must call Reset to release the lock.
type Cursor struct {
	view View

	// Current iteration state
	end     uint32
	index   uint32
	current EntityID

	initialized bool
}

func newCursor(view View) *Cursor {
	return &Cursor{view: view}
}

// Next advances to the next matching entity and reports whether there was one.
func (c *Cursor) Next() bool {
	if !c.initialized {
		c.initialize()
	}
	for c.index < c.end {
		index := c.index
		c.index++
		if c.view.matches(index) {
			c.current = NewEntityID(index, c.view.manager.versions[index])
			return true
		}
	}
	c.Reset()
	return false
}

func (c *Cursor) initialize() {
	c.view.manager.Lock()
	c.end = c.view.manager.numEntities
	c.index = 0
	c.initialized = true
}

// Reset ends the iteration, releasing the manager. The next call to Next starts over.
func (c *Cursor) Reset() {
	if c.initialized {
		c.initialized = false
		c.view.manager.release()
	}
	c.end = 0
	c.index = 0
	c.current = 0
}

// Entity returns the entity the cursor is positioned on.
func (c *Cursor) Entity() EntityID {
	return c.current
}

// TotalMatched counts all entities the view matches, independent of the cursor position.
func (c *Cursor) TotalMatched() int {
	return c.view.Count()
}
