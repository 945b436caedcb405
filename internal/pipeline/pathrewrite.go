package pipeline

import (
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rebasedAttrs lists the URL attributes rebased per element.
var rebasedAttrs = map[atom.Atom]string{
	atom.A:      "href",
	atom.Img:    "src",
	atom.Source: "src",
	atom.Video:  "src",
	atom.Audio:  "src",
}

// RewriteRelativePaths rebases relative links and media in a rendered content
// fragment so they still resolve when the page is written to outputDir
// instead of next to its document in sourceDir.
// The fragment is returned unchanged when either directory is empty or both
// resolve to the same place. URLs, anchors, absolute paths and paths that
// escape sourceDir are left alone. Query strings and fragments are kept.
func RewriteRelativePaths(fragment, sourceDir, outputDir string) (string, error) {
	if sourceDir == "" || outputDir == "" {
		return fragment, nil
	}

	from, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}
	to, err := filepath.Abs(outputDir)
	if err != nil {
		return "", err
	}
	if from == to {
		return fragment, nil
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, n := range nodes {
		rebaseTree(n, from, to)
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// rebaseTree rewrites the URL attributes of n and its descendants.
func rebaseTree(n *html.Node, from, to string) {
	if n.Type == html.ElementNode {
		if key, ok := rebasedAttrs[n.DataAtom]; ok {
			for i := range n.Attr {
				if n.Attr[i].Key == key && n.Attr[i].Namespace == "" {
					n.Attr[i].Val = rebase(n.Attr[i].Val, from, to)
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rebaseTree(c, from, to)
	}
}

// rebase returns ref relative to to instead of from, or ref itself when it
// is not a relative reference inside from.
func rebase(ref, from, to string) string {
	if !isRelativeRef(ref) {
		return ref
	}

	path, suffix := ref, ""
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		path, suffix = ref[:i], ref[i:]
	}

	target := filepath.Join(from, filepath.FromSlash(path))
	if !within(target, from) {
		return ref
	}

	rel, err := filepath.Rel(to, target)
	if err != nil {
		return ref
	}
	return filepath.ToSlash(rel) + suffix
}

// isRelativeRef reports whether ref is a relative file reference:
// not empty, not an anchor, not absolute, and without a scheme or host.
func isRelativeRef(ref string) bool {
	switch {
	case ref == "", strings.HasPrefix(ref, "#"), strings.HasPrefix(ref, "?"):
		return false
	case strings.HasPrefix(ref, "/"), strings.HasPrefix(ref, `\`), filepath.IsAbs(ref):
		return false
	case hasScheme(ref):
		return false
	}
	return true
}

// hasScheme reports whether ref starts with "scheme:".
func hasScheme(ref string) bool {
	scheme, _, found := strings.Cut(ref, ":")
	return found && scheme != "" && !strings.ContainsAny(scheme, "/.?#")
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
