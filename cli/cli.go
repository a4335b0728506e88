// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for plain (non-TUI) play.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"

	"github.com/nathoo/dungeonexplorer/engine"
)

var (
	colorSystem  = color.Style{color.FgGray}
	colorHeading = color.Style{color.FgMagenta, color.OpBold}
	colorRound   = color.Style{color.FgCyan}
	colorDanger  = color.Style{color.FgRed, color.OpBold}
	colorReward  = color.Style{color.FgGreen, color.OpBold}
	colorPrompt  = color.Style{color.FgYellow}
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Meta
	In        io.Reader
	Out       io.Writer
	Color     bool   // colourise output with ANSI codes
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine, saving under saveDir.
func New(eng *engine.Engine, saveDir string) *CLI {
	return &CLI{
		Meta:  Meta{Engine: eng, SaveDir: saveDir},
		In:    os.Stdin,
		Out:   os.Stdout,
		Color: color.SupportColor(),
	}
}

// Run shows the intro and the starting room, then loops: prompt → input →
// dispatch → output. It returns when input ends, the player quits or ctx
// is cancelled.
func (c *CLI) Run(ctx context.Context) {
	for _, line := range c.Engine.Intro() {
		c.printStyled(line)
	}

	scanner := bufio.NewScanner(c.In)
	for ctx.Err() == nil {
		fmt.Fprint(c.Out, "> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		// Skip blank and comment lines (for script files).
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			reply := c.Handle(ctx, input)
			for _, n := range reply.Notices {
				c.printSystem(n)
			}
			for _, l := range reply.Lines {
				c.printStyled(l)
			}
			if reply.Quit {
				return
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(ctx, input)
		for _, line := range result.Output {
			c.printStyled(line)
		}
		for _, line := range c.TraceLines(result) {
			c.printSystem(line)
		}
	}
}

// lineStyle picks a colour for a narration line, if any.
func lineStyle(line string) (color.Style, bool) {
	switch {
	case strings.HasPrefix(line, "===="):
		return colorHeading, true
	case strings.HasPrefix(line, "-- Round"):
		return colorRound, true
	case line == "GAME OVER", strings.HasPrefix(line, "You have been defeated"):
		return colorDanger, true
	case strings.HasPrefix(line, "Congratulations"), strings.HasSuffix(line, "has been defeated!"),
		strings.HasPrefix(line, "You found a"), strings.HasPrefix(line, "You gained"):
		return colorReward, true
	case strings.HasPrefix(line, "What will you do?"):
		return colorPrompt, true
	}
	return nil, false
}

func (c *CLI) printStyled(text string) {
	if c.Color {
		if st, ok := lineStyle(text); ok {
			text = st.Sprint(text)
		}
	}
	c.printLine(text)
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	text = "[" + text + "]"
	if c.Color {
		text = colorSystem.Sprint(text)
	}
	fmt.Fprintln(c.Out, text)
}
