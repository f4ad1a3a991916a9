package desktop

import (
	"github.com/BrandonKowalski/navigator/pkg/navigator/constants"
	"github.com/BrandonKowalski/navigator/pkg/navigator/view"
	"github.com/veandco/go-sdl2/sdl"
)

// TextureSource returns the texture drawn for a page, or nil to fill the
// page with the theme color.
type TextureSource func(page *view.Node) *sdl.Texture

// Compositor draws a navigator container: one layer per visible child, in
// document order, so later pages and scrims cover earlier ones.
type Compositor struct {
	Renderer   *sdl.Renderer
	Theme      Theme
	TextureFor TextureSource

	chevron *sdl.Texture
}

func NewCompositor(renderer *sdl.Renderer, theme Theme) (*Compositor, error) {
	chevron, err := chevronTexture(renderer, theme.AccentColor, theme.ToolbarHeight/2)
	if err != nil {
		return nil, err
	}
	return &Compositor{
		Renderer: renderer,
		Theme:    theme,
		chevron:  chevron,
	}, nil
}

// layer is where and how opaque a node is drawn.
type layer struct {
	dx    int32
	alpha uint8
}

// place combines the node's transform and opacity with its parent layer.
func place(n *view.Node, parent layer, width int32) layer {
	if n == nil {
		return parent
	}
	style := n.Style()

	x, ok := view.TranslateX(style)
	if !ok {
		x = 0
	}
	return layer{
		dx:    parent.dx + int32(x/100*float64(width)),
		alpha: uint8(float64(parent.alpha) * view.Opacity(style)),
	}
}

// Draw clears the frame and renders the container's visible children.
func (c *Compositor) Draw(container *view.Node, width, height int32) {
	bg := c.Theme.BackgroundColor
	c.Renderer.SetDrawColor(bg.R, bg.G, bg.B, bg.A)
	c.Renderer.Clear()

	root := layer{alpha: 0xFF}
	for _, child := range container.Children() {
		if child.Hidden() {
			continue
		}
		if child.HasClass(constants.ScrimClass) {
			c.drawScrim(place(child, root, width), width, height)
			continue
		}
		c.drawPage(child, place(child, root, width), width, height)
	}
}

func (c *Compositor) drawScrim(l layer, width, height int32) {
	alpha := uint8(uint32(l.alpha) * uint32(c.Theme.ScrimAlpha) / 0xFF)
	c.Renderer.SetDrawColor(0, 0, 0, alpha)
	c.Renderer.FillRect(&sdl.Rect{X: l.dx, Y: 0, W: width, H: height})
}

func (c *Compositor) drawPage(page *view.Node, l layer, width, height int32) {
	toolbar := page.FindTag(constants.ToolbarTag)
	top := int32(0)
	if toolbar != nil {
		top = c.Theme.ToolbarHeight
	}

	body := place(page.Find(constants.ContentClass), l, width)
	dst := &sdl.Rect{X: body.dx, Y: top, W: width, H: height - top}

	var texture *sdl.Texture
	if c.TextureFor != nil {
		texture = c.TextureFor(page)
	}
	if texture != nil {
		texture.SetAlphaMod(body.alpha)
		c.Renderer.Copy(texture, nil, dst)
	} else {
		fill := c.Theme.PageColor
		c.Renderer.SetDrawColor(fill.R, fill.G, fill.B, body.alpha)
		c.Renderer.FillRect(dst)
	}

	if toolbar != nil {
		c.drawToolbar(toolbar, l, width)
	}
}

func (c *Compositor) drawToolbar(toolbar *view.Node, l layer, width int32) {
	bar := place(toolbar, l, width)
	fill := c.Theme.ToolbarColor
	if _, transparent := toolbar.Style()["background-color"]; !transparent {
		c.Renderer.SetDrawColor(fill.R, fill.G, fill.B, bar.alpha)
		c.Renderer.FillRect(&sdl.Rect{X: l.dx, Y: 0, W: width, H: c.Theme.ToolbarHeight})
	}

	label := toolbar.Find(constants.BackLabelClass)
	if label == nil || label.Text() == "" || c.chevron == nil {
		return
	}

	back := place(label, l, width)
	size := c.Theme.ToolbarHeight / 2
	c.chevron.SetAlphaMod(back.alpha)
	c.Renderer.Copy(c.chevron, nil, &sdl.Rect{X: back.dx + size/2, Y: size / 2, W: size, H: size})
}

// Close releases the compositor's textures.
func (c *Compositor) Close() {
	if c.chevron != nil {
		c.chevron.Destroy()
		c.chevron = nil
	}
}
