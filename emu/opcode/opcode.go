/*
 * Synacor VM - Opcode definitions
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

package opcode

const (
	// Opcode definitions.
	OpHALT uint16 = iota // Stop execution.
	OpSET                // a <- b
	OpPUSH               // push a
	OpPOP                // pop into a, empty stack is a fault
	OpEQ                 // a <- b == c
	OpGT                 // a <- b > c
	OpJMP                // pc <- a
	OpJT                 // if a != 0, pc <- b
	OpJF                 // if a == 0, pc <- b
	OpADD                // a <- (b + c) mod 32768
	OpMULT               // a <- (b * c) mod 32768
	OpMOD                // a <- b mod c
	OpAND                // a <- b & c
	OpOR                 // a <- b | c
	OpNOT                // a <- 15-bit inverse of b
	OpRMEM               // a <- mem[b]
	OpWMEM               // mem[a] <- b
	OpCALL               // push pc+2, pc <- a
	OpRET                // pop into pc, empty stack halts
	OpOUT                // write character a
	OpIN                 // read character into a
	OpNOOP               // No operation.

	// Count is one past the highest valid opcode.
	Count
)

// Number of operand words following each opcode.
var operands = [Count]uint16{
	OpHALT: 0,
	OpSET:  2,
	OpPUSH: 1,
	OpPOP:  1,
	OpEQ:   3,
	OpGT:   3,
	OpJMP:  1,
	OpJT:   2,
	OpJF:   2,
	OpADD:  3,
	OpMULT: 3,
	OpMOD:  3,
	OpAND:  3,
	OpOR:   3,
	OpNOT:  2,
	OpRMEM: 2,
	OpWMEM: 2,
	OpCALL: 1,
	OpRET:  0,
	OpOUT:  1,
	OpIN:   1,
	OpNOOP: 0,
}

var names = [Count]string{
	"HALT", "SET", "PUSH", "POP", "EQ", "GT", "JMP", "JT", "JF",
	"ADD", "MULT", "MOD", "AND", "OR", "NOT", "RMEM", "WMEM",
	"CALL", "RET", "OUT", "IN", "NOOP",
}

// Check whether op names a valid instruction.
func Valid(op uint16) bool {
	return op < Count
}

// Return number of operand words the instruction consumes.
func Operands(op uint16) uint16 {
	if op >= Count {
		return 0
	}
	return operands[op]
}

// Return width of the full instruction in words, opcode included.
func Width(op uint16) uint16 {
	return 1 + Operands(op)
}

// Return instruction mnemonic.
func Name(op uint16) string {
	if op >= Count {
		return "???"
	}
	return names[op]
}
