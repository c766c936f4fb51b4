/*
 * Synacor VM - Binary image loader
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

package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	mem "github.com/rcornwell/synacor/emu/memory"
)

// ErrTooLarge reports an image that does not fit in memory. The
// words that did fit stay loaded.
var ErrTooLarge = errors.New("image exceeds memory size")

// Load reads r as little-endian 16-bit words and places them in
// memory starting at address 0. A trailing odd byte is ignored.
// Returns the number of words loaded.
func Load(r io.Reader, m *mem.Memory) (int, error) {
	image, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("reading image: %w", err)
	}

	words := len(image) / 2
	over := words > int(mem.Size)
	if over {
		words = int(mem.Size)
	}
	for i := 0; i < words; i++ {
		m.PutWord(uint16(i), binary.LittleEndian.Uint16(image[2*i:]))
	}
	if over {
		return words, ErrTooLarge
	}
	return words, nil
}

// LoadFile loads the binary image at path into memory.
func LoadFile(path string, m *mem.Memory) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening image: %w", err)
	}
	defer file.Close()
	return Load(file, m)
}
