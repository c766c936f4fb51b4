/*
 * Synacor VM - Operand stack
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

package stack

const (
	initialCap = 16

	// DefaultLimit bounds the backing store at a megabyte of storage
	// (524,288 16-bit words).
	// No call chain produced by a conforming program comes anywhere
	// near this depth.
	DefaultLimit = 512 * 1024
)

// Stack is the machine's auxiliary LIFO of words. The backing store
// grows geometrically on demand. Once a push exceeds the limit the
// stack enters a failed state and every later push and pop is a
// no-op that yields zero.
type Stack struct {
	data   []uint16
	limit  int
	failed bool
}

// New returns an empty stack with the default depth limit.
func New() *Stack {
	return &Stack{data: make([]uint16, 0, initialCap), limit: DefaultLimit}
}

// SetLimit replaces the depth limit. Values below one are ignored.
func (s *Stack) SetLimit(n int) {
	if n > 0 {
		s.limit = n
	}
}

// Push appends v at the top. Returns false if the stack has failed.
func (s *Stack) Push(v uint16) bool {
	if s.failed {
		return false
	}
	if len(s.data) >= s.limit {
		s.failed = true
		return false
	}
	s.data = append(s.data, v)
	return true
}

// Pop removes and returns the top word. Returns zero and false when
// the stack is empty or has failed.
func (s *Stack) Pop() (uint16, bool) {
	if s.failed || len(s.data) == 0 {
		return 0, false
	}
	idx := len(s.data) - 1
	v := s.data[idx]
	s.data = s.data[:idx]
	return v, true
}

// Empty reports whether the stack holds no words.
func (s *Stack) Empty() bool {
	return len(s.data) == 0
}

// Failed reports whether a push ran the backing store past its limit.
func (s *Stack) Failed() bool {
	return s.failed
}

// Depth returns the number of words on the stack.
func (s *Stack) Depth() int {
	return len(s.data)
}
