package testsupport

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// ParseHTML parses markup as a document (fragments are wrapped by the parser).
func ParseHTML(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// FindByID returns the first element whose id attribute matches, or nil.
func FindByID(root *html.Node, id string) *html.Node {
	return FindFirst(root, func(n *html.Node) bool {
		value, ok := Attr(n, "id")
		return ok && value == id
	})
}

// FindTag returns every element named tag in document order.
func FindTag(root *html.Node, tag string) []*html.Node {
	return FindAll(root, func(n *html.Node) bool {
		return n.Data == tag
	})
}

// FindFirst returns the first element (depth first) matching fn.
func FindFirst(root *html.Node, fn func(*html.Node) bool) *html.Node {
	matches := FindAll(root, fn)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// FindAll walks the tree and returns every element node matching fn.
func FindAll(root *html.Node, fn func(*html.Node) bool) []*html.Node {
	if root == nil {
		return nil
	}
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && fn(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// HasClass reports whether the element's class list contains class.
func HasClass(n *html.Node, class string) bool {
	value, _ := Attr(n, "class")
	for _, field := range strings.Fields(value) {
		if field == class {
			return true
		}
	}
	return false
}

// Text returns the whitespace normalised text content of n.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			b.WriteByte(' ')
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
