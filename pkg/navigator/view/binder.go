package view

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/BrandonKowalski/navigator/pkg/navigator/constants"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoPageElement is returned when markup does not consist of exactly one
// page root element.
var ErrNoPageElement = errors.New("view: no page element supplied")

// Toolbar exposes the header regions of a page. Regions the markup does not
// declare are nil.
type Toolbar struct {
	Element   Element
	BackLabel Element
	Center    Element
	Left      Element
	Right     Element
}

// PageController is the capability surface of a bound page.
type PageController interface {
	// ContentElement is the body of the page, or the page root when the
	// markup has no dedicated content region.
	ContentElement() Element
	// Toolbar returns the page header, or nil when the page has none.
	Toolbar() *Toolbar
	// Title returns the page title attribute.
	Title() string
}

// Page is the result of binding markup to a scope.
type Page struct {
	Root       *Node
	Controller PageController
}

type pageController struct {
	content Element
	toolbar *Toolbar
	title   string
}

func (c *pageController) ContentElement() Element { return c.content }
func (c *pageController) Toolbar() *Toolbar       { return c.toolbar }
func (c *pageController) Title() string           { return c.title }

var bindingPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][\w.]*)\s*\}\}`)

// HTMLBinder builds page nodes from HTML markup.
type HTMLBinder struct {
	PageTag string
}

// NewHTMLBinder creates a binder expecting constants.PageTag roots.
func NewHTMLBinder() *HTMLBinder {
	return &HTMLBinder{PageTag: constants.PageTag}
}

// Bind parses markup, interpolates {{key}} references from scope and builds
// the page tree. The trimmed markup must be a single page root element.
func (b *HTMLBinder) Bind(markup string, scope *Scope) (*Page, error) {
	tag := b.PageTag
	if tag == "" {
		tag = constants.PageTag
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(strings.TrimSpace(markup)), body)
	if err != nil {
		return nil, fmt.Errorf("view: parse page markup: %w", err)
	}

	if len(nodes) != 1 || nodes[0].Type != html.ElementNode || nodes[0].Data != tag {
		return nil, ErrNoPageElement
	}

	root := convert(nodes[0], scope)
	return &Page{Root: root, Controller: newPageController(root)}, nil
}

func newPageController(root *Node) *pageController {
	c := &pageController{
		content: root,
		title:   root.Attrs["title"],
	}

	if content := root.Find(constants.ContentClass); content != nil {
		c.content = content
	}

	if tb := root.FindTag(constants.ToolbarTag); tb != nil {
		c.toolbar = &Toolbar{
			Element:   tb,
			BackLabel: element(tb.Find(constants.BackLabelClass)),
			Center:    element(tb.Find(constants.CenterItemsClass)),
			Left:      element(tb.Find(constants.LeftItemsClass)),
			Right:     element(tb.Find(constants.RightItemsClass)),
		}
	}
	return c
}

// element keeps missing regions as untyped nil so callers can compare
// against nil.
func element(n *Node) Element {
	if n == nil {
		return nil
	}
	return n
}

func convert(src *html.Node, scope *Scope) *Node {
	attrs := make(map[string]string, len(src.Attr))
	for _, a := range src.Attr {
		attrs[a.Key] = interpolate(a.Val, scope)
	}
	n := NewNode(src.Data, attrs)

	var text strings.Builder
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			child := convert(c, scope)
			child.parent = n
			n.children = append(n.children, child)
		case html.TextNode:
			text.WriteString(c.Data)
		}
	}
	n.text = strings.TrimSpace(interpolate(text.String(), scope))
	return n
}

func interpolate(s string, scope *Scope) string {
	if scope == nil || !strings.Contains(s, "{{") {
		return s
	}
	return bindingPattern.ReplaceAllStringFunc(s, func(match string) string {
		key := bindingPattern.FindStringSubmatch(match)[1]
		if v, ok := scope.Get(key); ok && v != nil {
			return fmt.Sprint(v)
		}
		return ""
	})
}
