/*
 * Synacor VM - Operand resolution
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

package vm

const (
	// MaxLiteral is the largest operand word that carries its own value.
	MaxLiteral uint16 = 32767

	// Modulo reduces arithmetic results into the literal range.
	Modulo uint32 = 32768

	maxRegRef uint16 = MaxLiteral + NumRegs // 32775
)

// regIndex classifies w as a register reference, returning the
// register number. Words outside 32768..32775 are not registers.
func regIndex(w uint16) (uint16, bool) {
	if w <= MaxLiteral || w > maxRegRef {
		return 0, false
	}
	return w - MaxLiteral - 1, true
}

// number resolves w as a value: literals stand for themselves,
// register references read the register. Words above 32775 are
// malformed and resolve to nothing.
func (vm *VM) number(w uint16) (uint16, bool) {
	if w <= MaxLiteral {
		return w, true
	}
	if r, ok := regIndex(w); ok {
		return vm.regs[r], true
	}
	return 0, false
}

// dstReg resolves the destination-register operand w, applying the
// bad-operand policy on failure. width is the full instruction
// width, used by lenient machines to step past the instruction.
func (vm *VM) dstReg(w, width uint16) (uint16, bool) {
	r, ok := regIndex(w)
	if !ok {
		vm.operandFault(InvalidReg, width)
	}
	return r, ok
}

// value resolves the value operand w, applying the bad-operand
// policy on failure.
func (vm *VM) value(w, width uint16) (uint16, bool) {
	v, ok := vm.number(w)
	if !ok {
		vm.operandFault(InvalidNum, width)
	}
	return v, ok
}
