/*
 * Synacor VM - Console input
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package console

import (
	"errors"
	"io"
	"log/slog"

	"github.com/peterh/liner"
)

// Console reads program input a byte at a time from an interactive
// terminal. Each IN instruction consumes one byte; when the pending
// line runs dry the user is prompted for the next one. Line editing
// and history come from liner. Ctrl-C at the prompt reads as end of
// input, which the machine sees as a halt of the input stream.
type Console struct {
	line    *liner.State
	prompt  string
	pending []byte
	closed  bool
}

// Supported reports whether the terminal can run the line editor.
func Supported() bool {
	return liner.TerminalSupported()
}

// New returns a console prompting with the given string.
func New(prompt string) *Console {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &Console{line: line, prompt: prompt}
}

// ReadByte returns the next input byte, prompting for a fresh line
// when none is pending. Returns io.EOF once input is exhausted.
func (c *Console) ReadByte() (byte, error) {
	for len(c.pending) == 0 {
		if c.closed {
			return 0, io.EOF
		}
		input, err := c.line.Prompt(c.prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				c.closed = true
				return 0, io.EOF
			}
			slog.Error("console: " + err.Error())
			return 0, err
		}
		c.line.AppendHistory(input)
		c.pending = append([]byte(input), '\n')
	}

	b := c.pending[0]
	c.pending = c.pending[1:]
	return b, nil
}

// Close releases the terminal back to normal mode.
func (c *Console) Close() {
	c.line.Close()
}
