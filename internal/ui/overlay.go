package ui

import (
	"errors"
	"log/slog"
	"strconv"
	"unicode/utf8"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"inspect3d/internal/panel"
)

const (
	rowH      = int32(24)
	rowGap    = int32(2)
	indentW   = int32(14)
	titleH    = int32(30)
	fontSize  = int32(14)
	textInset = int32(6)
)

// Overlay draws a panel as a scrollable column on the right of the window
// and turns mouse and keyboard input into panel edits.
type Overlay struct {
	Width  int32
	logger *slog.Logger

	scroll int32

	// text entry on one control at a time
	active *panel.Control
	input  string

	// drag-to-scrub on number fields
	dragging  *panel.Control
	dragX     float32
	dragValue float64
}

func NewOverlay(logger *slog.Logger) *Overlay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Overlay{Width: 340, logger: logger}
}

// Editing reports whether a field has keyboard focus, in which case keys
// belong to the field.
func (o *Overlay) Editing() bool { return o.active != nil }

// Contains reports whether a screen point is over the panel.
func (o *Overlay) Contains(p rl.Vector2) bool {
	return p.X >= float32(int32(rl.GetScreenWidth())-o.Width)
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
}

// Draw draws p and applies this frame's input to it.
func (o *Overlay) Draw(p *panel.Panel, title string) {
	if p == nil {
		return
	}
	panelX := int32(rl.GetScreenWidth()) - o.Width
	panelH := int32(rl.GetScreenHeight())

	rl.DrawRectangle(panelX, 0, o.Width, panelH, colorBgPanel)
	rl.DrawRectangle(panelX, 0, 2, panelH, colorBorder)
	rl.DrawText(title, panelX+12, 8, 18, colorTextSecondary)

	mouse := rl.GetMousePosition()
	if o.Contains(mouse) {
		o.scroll -= int32(rl.GetMouseWheelMove() * 20)
		if o.scroll < 0 {
			o.scroll = 0
		}
	}

	rl.BeginScissorMode(panelX, titleH, o.Width, panelH-titleH)
	y := titleH + 4 - o.scroll

	// Clicks rebuild the tree, so they are applied after drawing.
	var clicked *panel.Folder
	for _, row := range p.Rows() {
		x := panelX + 10 + int32(row.Depth)*indentW
		w := o.Width - (x - panelX) - 10
		visible := y+rowH > titleH && y < panelH
		switch widget := row.Widget.(type) {
		case *panel.Folder:
			if visible && o.drawHeader(widget, x, y, w, mouse) {
				clicked = widget
			}
		case *panel.Control:
			if visible {
				o.drawControl(widget, x, y, w, mouse)
			}
		}
		y += rowH + rowGap
	}

	total := y + o.scroll - titleH
	if maxScroll := total - (panelH - titleH) + 40; o.scroll > maxScroll {
		o.scroll = max(maxScroll, 0)
	}
	rl.EndScissorMode()

	if clicked != nil {
		o.release()
		clicked.Click(shiftDown())
	}
	if !o.Editing() && ctrlDown() && rl.IsKeyPressed(rl.KeyZ) {
		o.undo(p)
	}
}

func (o *Overlay) undo(p *panel.Panel) {
	c, err := p.History().Undo()
	switch {
	case errors.Is(err, panel.ErrNothingToUndo):
	case err != nil:
		o.apply(c, err)
	default:
		o.logger.Debug("edit undone", "control", c.Label())
	}
}

// release drops field focus, typically because the control is about to be
// removed.
func (o *Overlay) release() {
	o.active = nil
	o.input = ""
	o.dragging = nil
}

func hit(mouse rl.Vector2, x, y, w, h int32) bool {
	return mouse.X >= float32(x) && mouse.X <= float32(x+w) &&
		mouse.Y >= float32(y) && mouse.Y <= float32(y+h)
}

func rect(x, y, w, h int32) rl.Rectangle {
	return rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)}
}

// drawHeader draws a folder header and reports whether it was clicked.
func (o *Overlay) drawHeader(f *panel.Folder, x, y, w int32, mouse rl.Vector2) bool {
	hovered := hit(mouse, x, y, w, rowH)
	rl.DrawRectangleRounded(rect(x, y, w, rowH), 0.2, 4, headerColor(f.Highlight(), hovered))
	arrow := ">"
	if f.IsOpen() {
		arrow = "v"
	}
	rl.DrawText(arrow, x+textInset, y+5, fontSize, colorAccentLight)
	rl.DrawText(f.Label(), x+textInset+14, y+5, fontSize, colorTextPrimary)
	return hovered && rl.IsMouseButtonPressed(rl.MouseLeftButton)
}

func (o *Overlay) drawControl(c *panel.Control, x, y, w int32, mouse rl.Vector2) {
	if c.Kind() == panel.Button {
		if gui.Button(rect(x, y, w, rowH), c.Label()) {
			o.apply(c, c.Press())
		}
		return
	}

	labelW := w * 2 / 5
	rl.DrawText(c.Label(), x+2, y+5, fontSize, colorTextMuted)
	fx, fw := x+labelW, w-labelW

	switch c.Kind() {
	case panel.Toggle:
		cur := c.Display() == "on"
		if next := gui.CheckBox(rect(fx, y+4, rowH-8, rowH-8), "", cur); next != cur {
			o.apply(c, c.SetValue(next))
		}
	case panel.Number:
		if lo, hi, ok := c.Range(); ok && o.active != c {
			cur := float32(c.Float())
			next := gui.Slider(rect(fx, y+3, fw-50, rowH-6), "", c.Display(), cur, float32(lo), float32(hi))
			if next != cur {
				o.apply(c, c.SetValue(next))
			}
			return
		}
		o.drawNumberField(c, fx, y, fw, mouse)
	case panel.Choice:
		o.drawChoiceField(c, fx, y, fw, mouse)
	default:
		o.drawTextField(c, fx, y, fw, mouse)
	}
}

func (o *Overlay) apply(c *panel.Control, err error) {
	if err != nil {
		o.logger.Warn("edit rejected", "control", c.Label(), "err", err)
	}
}

// drawNumberField draws an editable number with drag-to-scrub. A click
// without motion enters text entry.
func (o *Overlay) drawNumberField(c *panel.Control, x, y, w int32, mouse rl.Vector2) {
	hovered := hit(mouse, x, y, w, rowH)
	editing := o.active == c
	dragging := o.dragging == c

	bg := colorBgElement
	if editing {
		bg = colorBgActive
	} else if hovered || dragging {
		bg = colorBgHover
	}
	rl.DrawRectangleRounded(rect(x, y, w, rowH), 0.2, 4, bg)
	if editing {
		rl.DrawRectangleRoundedLinesEx(rect(x, y, w, rowH), 0.2, 4, 1, colorAccent)
		o.drawEntry(c, x, y, hovered, func(r rune) bool {
			return (r >= '0' && r <= '9') || r == '-' || r == '.'
		}, func(s string) {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				o.apply(c, c.SetValue(f))
			}
		})
		return
	}

	if hovered && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		o.dragging = c
		o.dragX = mouse.X
		o.dragValue = c.Float()
	}
	if dragging {
		dx := mouse.X - o.dragX
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			if dx != 0 {
				o.apply(c, c.SetValue(o.dragValue+float64(dx)*ScrubStep(c, shiftDown())))
			}
		} else {
			if dx > -2 && dx < 2 {
				o.active = c
				o.input = c.Display()
			}
			o.dragging = nil
		}
	}
	rl.DrawText(c.Display(), x+textInset, y+5, fontSize, colorTextSecondary)
}

// drawChoiceField cycles through the choices: left click forward, right
// click back.
func (o *Overlay) drawChoiceField(c *panel.Control, x, y, w int32, mouse rl.Vector2) {
	hovered := hit(mouse, x, y, w, rowH)
	bg := colorBgElement
	if hovered {
		bg = colorBgHover
	}
	rl.DrawRectangleRounded(rect(x, y, w, rowH), 0.2, 4, bg)
	rl.DrawText(c.Display(), x+textInset, y+5, fontSize, colorTextPrimary)
	rl.DrawText("<>", x+w-20, y+5, fontSize, colorTextMuted)
	if !hovered {
		return
	}
	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		o.apply(c, c.Nudge(1))
	case rl.IsMouseButtonPressed(rl.MouseRightButton):
		o.apply(c, c.Nudge(-1))
	}
}

func (o *Overlay) drawTextField(c *panel.Control, x, y, w int32, mouse rl.Vector2) {
	hovered := hit(mouse, x, y, w, rowH)
	editing := o.active == c
	bg := colorBgElement
	if editing {
		bg = colorBgActive
	} else if hovered {
		bg = colorBgHover
	}
	rl.DrawRectangleRounded(rect(x, y, w, rowH), 0.2, 4, bg)
	if editing {
		rl.DrawRectangleRoundedLinesEx(rect(x, y, w, rowH), 0.2, 4, 1, colorAccent)
		o.drawEntry(c, x, y, hovered, func(r rune) bool { return r >= 32 }, func(s string) {
			o.apply(c, c.SetValue(s))
		})
		return
	}
	rl.DrawText(c.Display(), x+textInset, y+5, fontSize, colorTextSecondary)
	if hovered && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		o.active = c
		o.input = c.Display()
	}
}

// drawEntry runs text entry for the focused control. Enter, Tab or a click
// elsewhere commits; Escape cancels.
func (o *Overlay) drawEntry(c *panel.Control, x, y int32, hovered bool, accept func(rune) bool, commit func(string)) {
	rl.DrawText(o.input+"_", x+textInset, y+5, fontSize, colorTextPrimary)
	for {
		key := rl.GetCharPressed()
		if key == 0 {
			break
		}
		if r := rune(key); accept(r) {
			o.input += string(r)
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		o.input = trimLastRune(o.input)
	}

	clickedOutside := rl.IsMouseButtonPressed(rl.MouseLeftButton) && !hovered
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) || rl.IsKeyPressed(rl.KeyTab) || clickedOutside {
		if o.input != "" || c.Kind() == panel.Text {
			commit(o.input)
		}
		o.release()
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		o.release()
	}
}

func trimLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
