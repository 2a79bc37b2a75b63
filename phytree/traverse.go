package phytree

// Ancestors returns the chain of ancestors of v, nearest first, ending
// at the root. The root itself has an empty chain.
func (t *Tree) Ancestors(v int) []int {
	var chain []int
	for p := t.parent[v]; p >= 0; p = t.parent[p] {
		chain = append(chain, p)
	}

	return chain
}

// Postorder returns all node ids in post-order: every node appears
// after all of its children.
func (t *Tree) Postorder() []int {
	return t.PostorderFrom(t.Root())
}

// PostorderFrom returns the nodes of the subtree rooted at v in
// post-order. v itself is the last element.
func (t *Tree) PostorderFrom(v int) []int {
	return t.postorder(v, nil)
}

// PostorderFromExcluding returns the post-order of the subtree rooted
// at v, skipping every subtree whose root is in excluded. v is always
// traversed even if it appears in the set, so a caller may keep v in a
// persistent exclusion set while searching below it.
func (t *Tree) PostorderFromExcluding(v int, excluded map[int]struct{}) []int {
	return t.postorder(v, excluded)
}

// postorder is the shared two-stack traversal: the first stack visits
// nodes root-first, the second reverses that into post-order. Iterative
// so deep chains never grow the call stack.
func (t *Tree) postorder(start int, excluded map[int]struct{}) []int {
	stack := []int{start}
	var rev []int
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		rev = append(rev, v)
		for _, c := range t.children[v] {
			if excluded != nil {
				if _, skip := excluded[c]; skip {
					continue
				}
			}
			stack = append(stack, c)
		}
	}

	// rev holds a reverse post-order with children visited right-to-left;
	// reversing it yields post-order with children in Newick order.
	out := make([]int, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}

	return out
}
