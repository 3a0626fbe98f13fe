package orderbook

// rbColor is a red-black tree node color.
type rbColor uint8

const (
	red   rbColor = 0
	black rbColor = 1
)

// rbNil marks an absent child or parent link. There is no physical
// sentinel node: arithmetic on rbNil never happens, every traversal
// checks against it before indexing into nodes.
const rbNil int32 = -1

// rbNode is one arena slot. Children and parent are indices into the
// tree's own node slice instead of pointers, so a released slot can be
// handed back out by Upsert without touching any other node's links,
// the same free-list idea SlabPool uses for Order, applied here to the
// price index itself.
type rbNode struct {
	key    Price
	level  *Level
	color  rbColor
	left   int32
	right  int32
	parent int32
}

// RBTree is the ordered price index backing one side of the Book. It
// maps Price to *Level and supports O(log L) insert/delete and O(log L)
// min/max lookup, which is how Book answers best_bid/best_ask: bids
// query Max, asks query Min.
type RBTree struct {
	nodes []rbNode
	free  []int32
	root  int32
	size  int
}

// NewRBTree constructs an empty tree.
func NewRBTree() *RBTree {
	return &RBTree{root: rbNil}
}

// Size returns the number of levels currently indexed.
func (t *RBTree) Size() int { return t.size }

// Find returns the level at price, or nil if none is indexed there.
func (t *RBTree) Find(price Price) *Level {
	i := t.search(price)
	if i == rbNil {
		return nil
	}
	return t.nodes[i].level
}

// Upsert returns the existing level at price, or constructs and indexes
// a new one.
func (t *RBTree) Upsert(price Price) *Level {
	parent := rbNil
	i := t.root
	for i != rbNil {
		parent = i
		switch {
		case price < t.nodes[i].key:
			i = t.nodes[i].left
		case price > t.nodes[i].key:
			i = t.nodes[i].right
		default:
			return t.nodes[i].level
		}
	}

	lvl := newLevel(price)
	z := t.alloc(price, lvl)
	t.nodes[z].parent = parent
	switch {
	case parent == rbNil:
		t.root = z
	case price < t.nodes[parent].key:
		t.nodes[parent].left = z
	default:
		t.nodes[parent].right = z
	}
	t.insertFixup(z)
	t.size++
	return lvl
}

// Delete removes the level at price, if indexed. It reports whether a
// level was found and removed.
func (t *RBTree) Delete(price Price) bool {
	z := t.search(price)
	if z == rbNil {
		return false
	}
	t.deleteNode(z)
	t.size--
	return true
}

// Min returns the level with the smallest price, or nil if the tree is
// empty.
func (t *RBTree) Min() *Level {
	i := t.minIdx(t.root)
	if i == rbNil {
		return nil
	}
	return t.nodes[i].level
}

// Max returns the level with the largest price, or nil if the tree is
// empty.
func (t *RBTree) Max() *Level {
	i := t.maxIdx(t.root)
	if i == rbNil {
		return nil
	}
	return t.nodes[i].level
}

// ForEachAscending visits every level from lowest to highest price
// until fn returns false.
func (t *RBTree) ForEachAscending(fn func(*Level) bool) {
	for i := t.minIdx(t.root); i != rbNil; i = t.nextIdx(i) {
		if !fn(t.nodes[i].level) {
			return
		}
	}
}

// ForEachDescending visits every level from highest to lowest price
// until fn returns false.
func (t *RBTree) ForEachDescending(fn func(*Level) bool) {
	for i := t.maxIdx(t.root); i != rbNil; i = t.prevIdx(i) {
		if !fn(t.nodes[i].level) {
			return
		}
	}
}

/* ---------------- internals: arena, search, rotations, fixups ---------------- */

// alloc hands out a node slot, preferring a released one over growing
// the backing slice.
func (t *RBTree) alloc(key Price, lvl *Level) int32 {
	n := rbNode{key: key, level: lvl, color: red, left: rbNil, right: rbNil, parent: rbNil}
	if len(t.free) > 0 {
		i := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.nodes[i] = n
		return i
	}
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

func (t *RBTree) release(i int32) {
	t.nodes[i] = rbNode{}
	t.free = append(t.free, i)
}

func (t *RBTree) colorOf(i int32) rbColor {
	if i == rbNil {
		return black
	}
	return t.nodes[i].color
}

func (t *RBTree) setColor(i int32, c rbColor) {
	if i == rbNil {
		return
	}
	t.nodes[i].color = c
}

func (t *RBTree) search(price Price) int32 {
	i := t.root
	for i != rbNil {
		switch {
		case price < t.nodes[i].key:
			i = t.nodes[i].left
		case price > t.nodes[i].key:
			i = t.nodes[i].right
		default:
			return i
		}
	}
	return rbNil
}

func (t *RBTree) minIdx(i int32) int32 {
	if i == rbNil {
		return rbNil
	}
	for t.nodes[i].left != rbNil {
		i = t.nodes[i].left
	}
	return i
}

func (t *RBTree) maxIdx(i int32) int32 {
	if i == rbNil {
		return rbNil
	}
	for t.nodes[i].right != rbNil {
		i = t.nodes[i].right
	}
	return i
}

func (t *RBTree) nextIdx(i int32) int32 {
	if t.nodes[i].right != rbNil {
		return t.minIdx(t.nodes[i].right)
	}
	p := t.nodes[i].parent
	for p != rbNil && i == t.nodes[p].right {
		i = p
		p = t.nodes[p].parent
	}
	return p
}

func (t *RBTree) prevIdx(i int32) int32 {
	if t.nodes[i].left != rbNil {
		return t.maxIdx(t.nodes[i].left)
	}
	p := t.nodes[i].parent
	for p != rbNil && i == t.nodes[p].left {
		i = p
		p = t.nodes[p].parent
	}
	return p
}

func (t *RBTree) leftRotate(x int32) {
	y := t.nodes[x].right
	t.nodes[x].right = t.nodes[y].left
	if t.nodes[y].left != rbNil {
		t.nodes[t.nodes[y].left].parent = x
	}
	p := t.nodes[x].parent
	t.nodes[y].parent = p
	switch {
	case p == rbNil:
		t.root = y
	case x == t.nodes[p].left:
		t.nodes[p].left = y
	default:
		t.nodes[p].right = y
	}
	t.nodes[y].left = x
	t.nodes[x].parent = y
}

func (t *RBTree) rightRotate(y int32) {
	x := t.nodes[y].left
	t.nodes[y].left = t.nodes[x].right
	if t.nodes[x].right != rbNil {
		t.nodes[t.nodes[x].right].parent = y
	}
	p := t.nodes[y].parent
	t.nodes[x].parent = p
	switch {
	case p == rbNil:
		t.root = x
	case y == t.nodes[p].right:
		t.nodes[p].right = x
	default:
		t.nodes[p].left = x
	}
	t.nodes[x].right = y
	t.nodes[y].parent = x
}

func (t *RBTree) insertFixup(z int32) {
	for t.colorOf(t.nodes[z].parent) == red {
		p := t.nodes[z].parent
		gp := t.nodes[p].parent
		if p == t.nodes[gp].left {
			y := t.nodes[gp].right
			if t.colorOf(y) == red {
				t.nodes[p].color = black
				t.nodes[y].color = black
				t.nodes[gp].color = red
				z = gp
				continue
			}
			if z == t.nodes[p].right {
				z = p
				t.leftRotate(z)
				p = t.nodes[z].parent
				gp = t.nodes[p].parent
			}
			t.nodes[p].color = black
			t.nodes[gp].color = red
			t.rightRotate(gp)
		} else {
			y := t.nodes[gp].left
			if t.colorOf(y) == red {
				t.nodes[p].color = black
				t.nodes[y].color = black
				t.nodes[gp].color = red
				z = gp
				continue
			}
			if z == t.nodes[p].left {
				z = p
				t.rightRotate(z)
				p = t.nodes[z].parent
				gp = t.nodes[p].parent
			}
			t.nodes[p].color = black
			t.nodes[gp].color = red
			t.leftRotate(gp)
		}
	}
	t.nodes[t.root].color = black
}

// transplant replaces the subtree rooted at u with the one rooted at v,
// wiring v into u's parent. u's own fields are left untouched; the
// caller is responsible for releasing u's slot once it is fully
// detached.
func (t *RBTree) transplant(u, v int32) {
	p := t.nodes[u].parent
	switch {
	case p == rbNil:
		t.root = v
	case u == t.nodes[p].left:
		t.nodes[p].left = v
	default:
		t.nodes[p].right = v
	}
	if v != rbNil {
		t.nodes[v].parent = p
	}
}

func (t *RBTree) deleteNode(z int32) {
	y := z
	yOrigColor := t.nodes[y].color
	var x, xParent int32

	switch {
	case t.nodes[z].left == rbNil:
		x = t.nodes[z].right
		xParent = t.nodes[z].parent
		t.transplant(z, x)
	case t.nodes[z].right == rbNil:
		x = t.nodes[z].left
		xParent = t.nodes[z].parent
		t.transplant(z, x)
	default:
		y = t.minIdx(t.nodes[z].right)
		yOrigColor = t.nodes[y].color
		x = t.nodes[y].right
		if t.nodes[y].parent == z {
			xParent = y
		} else {
			xParent = t.nodes[y].parent
			t.transplant(y, x)
			t.nodes[y].right = t.nodes[z].right
			t.nodes[t.nodes[y].right].parent = y
		}
		t.transplant(z, y)
		t.nodes[y].left = t.nodes[z].left
		t.nodes[t.nodes[y].left].parent = y
		t.nodes[y].color = t.nodes[z].color
	}

	t.release(z)

	if yOrigColor == black {
		t.deleteFixup(x, xParent)
	}
}

// deleteFixup restores the red-black invariants starting at x, whose
// real or would-be parent is parent. x itself may be rbNil; there is no
// sentinel node to carry that information, so the caller threads parent
// through explicitly instead of relying on a sentinel's parent field.
func (t *RBTree) deleteFixup(x, parent int32) {
	for x != t.root && t.colorOf(x) == black {
		if x == t.nodes[parent].left {
			w := t.nodes[parent].right
			if t.colorOf(w) == red {
				t.nodes[w].color = black
				t.nodes[parent].color = red
				t.leftRotate(parent)
				w = t.nodes[parent].right
			}
			if t.colorOf(t.nodes[w].left) == black && t.colorOf(t.nodes[w].right) == black {
				t.nodes[w].color = red
				x = parent
				parent = t.nodes[parent].parent
				continue
			}
			if t.colorOf(t.nodes[w].right) == black {
				t.setColor(t.nodes[w].left, black)
				t.nodes[w].color = red
				t.rightRotate(w)
				w = t.nodes[parent].right
			}
			t.nodes[w].color = t.nodes[parent].color
			t.nodes[parent].color = black
			t.setColor(t.nodes[w].right, black)
			t.leftRotate(parent)
			x = t.root
		} else {
			w := t.nodes[parent].left
			if t.colorOf(w) == red {
				t.nodes[w].color = black
				t.nodes[parent].color = red
				t.rightRotate(parent)
				w = t.nodes[parent].left
			}
			if t.colorOf(t.nodes[w].right) == black && t.colorOf(t.nodes[w].left) == black {
				t.nodes[w].color = red
				x = parent
				parent = t.nodes[parent].parent
				continue
			}
			if t.colorOf(t.nodes[w].left) == black {
				t.setColor(t.nodes[w].right, black)
				t.nodes[w].color = red
				t.leftRotate(w)
				w = t.nodes[parent].left
			}
			t.nodes[w].color = t.nodes[parent].color
			t.nodes[parent].color = black
			t.setColor(t.nodes[w].left, black)
			t.rightRotate(parent)
			x = t.root
		}
	}
	t.setColor(x, black)
}
