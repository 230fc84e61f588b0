package content

import (
	"bytes"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

var titleCaser = cases.Title(language.English)

// Title returns the display title of the page a reference resolves to:
// the frontmatter title, then the first heading, then a title derived from
// the slug. Unresolvable references get the derived title.
func (ix *Index) Title(ref nav.ContentRef) (string, error) {
	rel, ok := ix.Resolve(ref)
	if !ok {
		return SlugTitle(ref.Slug()), nil
	}

	data, err := os.ReadFile(filepath.Join(ix.dir, filepath.FromSlash(rel)))
	if err != nil {
		return "", derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read content file").
			WithContext("path", rel).
			Build()
	}

	var title string
	switch strings.ToLower(path.Ext(rel)) {
	case ".html", ".htm":
		title = htmlTitle(data)
	default:
		title, err = markdownTitle(data)
		if err != nil {
			return "", derrors.WrapError(err, derrors.CategoryContent, "failed to parse frontmatter").
				WithContext("path", rel).
				Build()
		}
	}
	if title == "" {
		title = SlugTitle(ref.Slug())
	}
	return title, nil
}

// SlugTitle turns the last segment of a slug into a display title:
// "key-concepts-ledger" becomes "Key Concepts Ledger".
func SlugTitle(slug string) string {
	base := path.Base(strings.Trim(slug, "/"))
	if base == "index" || base == "." || base == "/" {
		base = path.Base(path.Dir(strings.Trim(slug, "/")))
		if base == "." || base == "/" {
			return "Home"
		}
	}
	words := strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return titleCaser.String(words)
}

// splitFrontmatter separates a leading `---` delimited YAML block from the body.
func splitFrontmatter(content []byte) (frontmatter, body []byte) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(content, []byte("---\n")) {
		return nil, content
	}
	rest := content[len("---\n"):]
	if bytes.HasPrefix(rest, []byte("---\n")) {
		return []byte{}, rest[len("---\n"):]
	}
	idx := bytes.Index(rest, []byte("\n---\n"))
	if idx < 0 {
		if bytes.HasSuffix(rest, []byte("\n---")) {
			return rest[:len(rest)-len("\n---")], nil
		}
		return nil, content
	}
	return rest[:idx+1], rest[idx+len("\n---\n"):]
}

func markdownTitle(content []byte) (string, error) {
	fm, body := splitFrontmatter(content)
	if len(fm) > 0 {
		var fields struct {
			Title string `yaml:"title"`
		}
		if err := yaml.Unmarshal(fm, &fields); err != nil {
			return "", err
		}
		if t := strings.TrimSpace(fields.Title); t != "" {
			return t, nil
		}
	}
	return firstHeading(body), nil
}

func firstHeading(body []byte) string {
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok {
			title = strings.TrimSpace(inlineText(h, body))
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	return title
}

func inlineText(n gmast.Node, source []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}

// htmlTitle returns the <title> text, or the first <h1> when there is none.
func htmlTitle(content []byte) string {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return ""
	}
	if t := findText(doc, atom.Title); t != "" {
		return t
	}
	return findText(doc, atom.H1)
}

func findText(n *html.Node, a atom.Atom) string {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return strings.Join(strings.Fields(textContent(n)), " ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findText(c, a); t != "" {
			return t
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}
