package memory

/*
 * Synacor VM - Low level memory
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

const (
	// Size is the number of addressable words.
	Size uint32 = 32768

	// AMASK masks an address to the 15 addressable bits.
	AMASK uint16 = 0x7fff
)

// Memory is one machine's word store. Code and data share the
// address space; programs are free to rewrite themselves.
type Memory struct {
	mem [Size]uint16
}

// Get memory value, address taken modulo memory size.
func (m *Memory) GetWord(addr uint16) uint16 {
	return m.mem[addr&AMASK]
}

// Set memory to a value, address taken modulo memory size.
func (m *Memory) PutWord(addr, data uint16) {
	m.mem[addr&AMASK] = data
}

// Clear memory back to all zeros.
func (m *Memory) Clear() {
	for i := range m.mem {
		m.mem[i] = 0
	}
}
