package rope

import (
	"strings"
	"unicode/utf8"
)

// Tree structure constants
const (
	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node represents a node in the rope B+ tree.
// Leaf nodes (height == 0) contain text chunks.
// Internal nodes (height > 0) contain children of exactly height-1.
type Node struct {
	height  uint8
	summary TextSummary

	children []*Node // internal nodes
	chunks   []Chunk // leaf nodes
}

// newLeafNode creates a leaf node with the given chunks.
func newLeafNode(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

// newInternalNode creates an internal node over children of equal height.
func newInternalNode(children []*Node) *Node {
	n := &Node{
		height:   children[0].height + 1,
		children: children,
	}
	for _, c := range children {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// leavesFromChunks packs chunks into one leaf, or a height-1 node over
// several leaves when they do not fit.
func leavesFromChunks(chunks []Chunk) *Node {
	if len(chunks) <= MaxChunksPerLeaf {
		return newLeafNode(chunks)
	}
	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leaves = append(leaves, newLeafNode(append([]Chunk(nil), chunks[i:end]...)))
	}
	return fromChildren(leaves)
}

// fromChildren builds a node over same-height children, grouping them
// under extra levels while there are more than MaxChildren.
// The result is always taller than the children.
func fromChildren(children []*Node) *Node {
	nodes := children
	for len(nodes) > MaxChildren {
		groups := (len(nodes) + MaxChildren - 1) / MaxChildren
		size := (len(nodes) + groups - 1) / groups
		parents := make([]*Node, 0, groups)
		for i := 0; i < len(nodes); i += size {
			end := min(i+size, len(nodes))
			parents = append(parents, newInternalNode(append([]*Node(nil), nodes[i:end]...)))
		}
		nodes = parents
	}
	return newInternalNode(nodes)
}

// trim collapses single-child internal nodes.
func trim(n *Node) *Node {
	for !n.IsLeaf() && len(n.children) == 1 {
		n = n.children[0]
	}
	return n
}

// liftTo returns the nodes of height h that n consists of. n is at most
// one level above h.
func liftTo(n *Node, h uint8) []*Node {
	if n.height == h {
		return []*Node{n}
	}
	return n.children
}

// joinNodes concatenates two subtrees. The result is at most one level
// taller than the taller input.
func joinNodes(l, r *Node) *Node {
	if l.summary.IsEmpty() {
		return r
	}
	if r.summary.IsEmpty() {
		return l
	}

	switch {
	case l.height == r.height:
		if l.IsLeaf() {
			chunks := make([]Chunk, 0, len(l.chunks)+len(r.chunks))
			chunks = append(chunks, l.chunks...)
			chunks = append(chunks, r.chunks...)
			return leavesFromChunks(mergeChunks(chunks))
		}
		children := make([]*Node, 0, len(l.children)+len(r.children))
		children = append(children, l.children...)
		children = append(children, r.children...)
		return fromChildren(children)

	case l.height > r.height:
		last := l.children[len(l.children)-1]
		merged := joinNodes(last, r)
		children := make([]*Node, 0, len(l.children)+1)
		children = append(children, l.children[:len(l.children)-1]...)
		children = append(children, liftTo(merged, last.height)...)
		return fromChildren(children)

	default:
		first := r.children[0]
		merged := joinNodes(l, first)
		children := make([]*Node, 0, len(r.children)+1)
		children = append(children, liftTo(merged, first.height)...)
		children = append(children, r.children[1:]...)
		return fromChildren(children)
	}
}

// joinAll concatenates a run of sibling nodes.
func joinAll(nodes []*Node) *Node {
	if len(nodes) == 0 {
		return newLeafNode(nil)
	}
	return fromChildren(append([]*Node(nil), nodes...))
}

// splitNode splits a subtree at a character index in [0, summary.Chars].
func splitNode(n *Node, at int) (*Node, *Node) {
	if at <= 0 {
		return newLeafNode(nil), n
	}
	if at >= n.summary.Chars {
		return n, newLeafNode(nil)
	}

	if n.IsLeaf() {
		var left, right []Chunk
		for _, c := range n.chunks {
			switch {
			case at <= 0:
				right = append(right, c)
			case at >= c.summary.Chars:
				left = append(left, c)
			default:
				l, r := c.SplitAt(at)
				left = append(left, l)
				right = append(right, r)
			}
			at -= c.summary.Chars
		}
		return newLeafNode(left), newLeafNode(right)
	}

	for i, child := range n.children {
		if at < child.summary.Chars {
			ls, rs := splitNode(child, at)
			left := joinNodes(trim(joinAll(n.children[:i])), ls)
			right := joinNodes(rs, trim(joinAll(n.children[i+1:])))
			return trim(left), trim(right)
		}
		at -= child.summary.Chars
	}
	return n, newLeafNode(nil)
}

// charAt returns the character at index i in [0, summary.Chars).
func charAt(n *Node, i int) rune {
	for !n.IsLeaf() {
		for _, child := range n.children {
			if i < child.summary.Chars {
				n = child
				break
			}
			i -= child.summary.Chars
		}
	}
	for _, c := range n.chunks {
		if i < c.summary.Chars {
			r, _ := utf8.DecodeRuneInString(c.data[charToByte(c.data, i):])
			return r
		}
		i -= c.summary.Chars
	}
	return utf8.RuneError
}

// appendRange writes the characters in [start, end) of n to b.
func appendRange(b *strings.Builder, n *Node, start, end int) {
	if start >= end {
		return
	}
	if n.IsLeaf() {
		for _, c := range n.chunks {
			chars := c.summary.Chars
			if start < chars && end > 0 {
				from := charToByte(c.data, max(start, 0))
				to := charToByte(c.data, min(end, chars))
				b.WriteString(c.data[from:to])
			}
			start -= chars
			end -= chars
		}
		return
	}
	for _, child := range n.children {
		chars := child.summary.Chars
		if start < chars && end > 0 {
			appendRange(b, child, max(start, 0), min(end, chars))
		}
		start -= chars
		end -= chars
		if end <= 0 {
			return
		}
	}
}

// newlineIndex returns the character index of the k-th (1-based) newline.
func newlineIndex(n *Node, k int) int {
	offset := 0
	for !n.IsLeaf() {
		for _, child := range n.children {
			if k <= child.summary.Lines {
				n = child
				break
			}
			k -= child.summary.Lines
			offset += child.summary.Chars
		}
	}
	for _, c := range n.chunks {
		if k > c.summary.Lines {
			k -= c.summary.Lines
			offset += c.summary.Chars
			continue
		}
		for _, r := range c.data {
			if r == '\n' {
				k--
				if k == 0 {
					return offset
				}
			}
			offset++
		}
	}
	return offset
}

// newlinesBefore counts the newlines in [0, i).
func newlinesBefore(n *Node, i int) int {
	lines := 0
	for !n.IsLeaf() {
		next := n.children[len(n.children)-1]
		for _, child := range n.children {
			if i < child.summary.Chars {
				next = child
				break
			}
			i -= child.summary.Chars
			lines += child.summary.Lines
		}
		n = next
	}
	for _, c := range n.chunks {
		if i >= c.summary.Chars {
			i -= c.summary.Chars
			lines += c.summary.Lines
			continue
		}
		for _, r := range c.data {
			if i == 0 {
				break
			}
			if r == '\n' {
				lines++
			}
			i--
		}
		break
	}
	return lines
}
