package model

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RenderMode selects how Alive and Dead cells are drawn
type RenderMode string

const (
	// ModeSize draws Alive cells as full blocks and Dead cells as dots
	ModeSize RenderMode = "size"
	// ModeColor draws every cell as a block, blue when Alive and red when Dead
	ModeColor RenderMode = "color"
)

const (
	gridPosBlock = "██"
	gridPosDot   = " ·"
	layerGap     = "  "

	ansiBlue  = "\x1b[34m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"

	clearCmd = "clear"
)

// ParseRenderMode accepts "size" or "color"
func ParseRenderMode(s string) (RenderMode, error) {
	switch m := RenderMode(strings.ToLower(s)); m {
	case ModeSize, ModeColor:
		return m, nil
	}
	return "", errors.Errorf("[ParseRenderMode] unknown mode %q", s)
}

// TerminalRenderer draws a grid as its z-layers placed side by side
type TerminalRenderer struct {
	Out  io.Writer
	Mode RenderMode
}

// NewTerminalRenderer renders to stdout
func NewTerminalRenderer(mode RenderMode) *TerminalRenderer {
	return &TerminalRenderer{Out: os.Stdout, Mode: mode}
}

func (r *TerminalRenderer) glyph(c Cell) string {
	if r.Mode == ModeColor {
		if c == Alive {
			return ansiBlue + gridPosBlock + ansiReset
		}
		return ansiRed + gridPosBlock + ansiReset
	}
	if c == Alive {
		return gridPosBlock
	}
	return gridPosDot
}

// Display renders the grid. Row y of every layer shares one output line,
// with y increasing upwards.
func (r *TerminalRenderer) Display(g *Grid) {
	var sb strings.Builder
	for y := g.height - 1; y >= 0; y-- {
		for z := range g.depth {
			if z > 0 {
				sb.WriteString(layerGap)
			}
			for x := range g.width {
				sb.WriteString(r.glyph(g.cells[g.index(x, y, z)]))
			}
		}
		sb.WriteByte('\n')
	}
	if _, err := io.WriteString(r.Out, sb.String()); err != nil {
		logrus.WithError(err).Error("[Display] failed to write grid")
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.Out
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.Out, "Error clearing terminal:", err)
	}
}
