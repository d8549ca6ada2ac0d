package content

// Walk visits n and its descendants pre-order, depth-first, in document order.
// Returning false from fn skips the children of the visited node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Content {
		Walk(child, fn)
	}
}

// Images returns every image node in document order.
func Images(n *Node) []*Node {
	var images []*Node
	Walk(n, func(node *Node) bool {
		if node.Kind == KindImage {
			images = append(images, node)
		}
		return true
	})
	return images
}

// Placeholders returns the placeholder references still pending in the tree.
func Placeholders(n *Node) []string {
	var refs []string
	for _, img := range Images(n) {
		if ref, ok := img.Placeholder(); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// Sources returns the source addresses of resolved images.
func Sources(n *Node) []string {
	var sources []string
	for _, img := range Images(n) {
		if src, ok := img.Source(); ok {
			sources = append(sources, src)
		}
	}
	return sources
}
