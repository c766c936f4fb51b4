/*
 * Synacor VM operand stack tests.
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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	s := New()
	values := []uint16{1, 0, 32767, 42, 9999}

	for _, v := range values {
		assert.True(t, s.Push(v))
	}
	assert.Equal(t, len(values), s.Depth())

	for i := len(values) - 1; i >= 0; i-- {
		v, ok := s.Pop()
		require.True(t, ok)
		assert.Equal(t, values[i], v)
	}
	assert.True(t, s.Empty())
}

func TestPopEmpty(t *testing.T) {
	s := New()

	v, ok := s.Pop()
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.False(t, s.Failed())
}

func TestGrowsPastInitialCapacity(t *testing.T) {
	s := New()
	const n = 10000

	for i := 0; i < n; i++ {
		require.True(t, s.Push(uint16(i%32768)))
	}
	assert.Equal(t, n, s.Depth())

	v, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, uint16((n-1)%32768), v)
}

func TestLimitFailsSticky(t *testing.T) {
	s := New()
	s.SetLimit(3)

	assert.True(t, s.Push(1))
	assert.True(t, s.Push(2))
	assert.True(t, s.Push(3))
	assert.False(t, s.Push(4))
	assert.True(t, s.Failed())

	// Failed state is sticky: pushes and pops become no-ops.
	assert.False(t, s.Push(5))
	v, ok := s.Pop()
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, 3, s.Depth())
}

func TestSetLimitIgnoresBadValues(t *testing.T) {
	s := New()
	s.SetLimit(0)
	s.SetLimit(-5)

	assert.True(t, s.Push(1))
}
