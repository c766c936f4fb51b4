/*
 * Synacor VM test cases.
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

import (
	"bytes"
	"testing"
)

// Build a machine around the given program words with output
// captured in a buffer.
func testMachine(strict bool, prog ...uint16) (*VM, *bytes.Buffer) {
	machine := New(strict)
	out := &bytes.Buffer{}
	machine.SetOutput(out)
	for i, w := range prog {
		machine.mem.PutWord(uint16(i), w)
	}
	machine.loaded = len(prog)
	return machine, out
}

func TestMinimumProgram(t *testing.T) {
	machine, _ := testMachine(true, 0)
	machine.Run()

	if !machine.Halted() {
		t.Error("machine should have halted")
	}
	if machine.Status() != OK {
		t.Errorf("status got %v want OK", machine.Status())
	}
	if machine.PC() != 0 {
		t.Errorf("PC got %d want 0", machine.PC())
	}
}

func TestDocumentationExample(t *testing.T) {
	machine, out := testMachine(true)
	machine.LoadTest()
	machine.Run()

	if !machine.Halted() {
		t.Error("machine should have halted")
	}
	if got := out.String(); got != "E" {
		t.Errorf("output got %q want %q", got, "E")
	}
	if machine.PC() != 6 {
		t.Errorf("PC got %d want 6", machine.PC())
	}
}

func TestArithmeticWrap(t *testing.T) {
	// set R0 32767; add R0 R0 1; out R0; halt
	machine, out := testMachine(true,
		1, 32768, 32767,
		9, 32768, 32768, 1,
		19, 32768,
		0)
	machine.Run()

	if machine.Status() != OK {
		t.Errorf("status got %v want OK", machine.Status())
	}
	if got := out.Bytes(); len(got) != 1 || got[0] != 0 {
		t.Errorf("output got %v want [0]", got)
	}
}

func TestStackRoundTrip(t *testing.T) {
	// push 1; push 2; push 3; pop R0; pop R1; pop R2; halt
	machine, _ := testMachine(true,
		2, 1,
		2, 2,
		2, 3,
		3, 32768,
		3, 32769,
		3, 32770,
		0)
	machine.Run()

	if machine.Status() != OK {
		t.Errorf("status got %v want OK", machine.Status())
	}
	if machine.Reg(0) != 3 || machine.Reg(1) != 2 || machine.Reg(2) != 1 {
		t.Errorf("registers got %d,%d,%d want 3,2,1",
			machine.Reg(0), machine.Reg(1), machine.Reg(2))
	}
	if !machine.StackEmpty() {
		t.Error("stack should be empty")
	}
}

func TestCallRet(t *testing.T) {
	// call 4; halt; noop; ret - the call pushes 2, the ret pops it
	// and lands on the halt.
	machine, _ := testMachine(true, 17, 4, 0, 21, 18)
	machine.Run()

	if !machine.Halted() {
		t.Error("machine should have halted")
	}
	if machine.Status() != OK {
		t.Errorf("status got %v want OK", machine.Status())
	}
	if !machine.StackEmpty() {
		t.Error("stack should be empty after return")
	}
	if machine.PC() != 2 {
		t.Errorf("PC got %d want 2", machine.PC())
	}
}

func TestInvalidOperandStrict(t *testing.T) {
	// set 40000 5 - destination is not a register
	machine, _ := testMachine(true, 1, 40000, 5)
	machine.Run()

	if !machine.Halted() {
		t.Error("machine should have halted")
	}
	if machine.Status() != InvalidReg {
		t.Errorf("status got %v want InvalidReg", machine.Status())
	}
}

func TestInvalidOperandLenient(t *testing.T) {
	machine, _ := testMachine(false, 1, 40000, 5)
	machine.Step()

	if machine.Status() != OK {
		t.Errorf("status got %v want OK", machine.Status())
	}
	if machine.PC() != 3 {
		t.Errorf("PC got %d want 3", machine.PC())
	}

	// The zero word after the instruction is a natural halt.
	machine.Run()
	if !machine.Halted() {
		t.Error("machine should reach the natural halt")
	}
	if machine.Status() != OK {
		t.Errorf("status got %v want OK", machine.Status())
	}
}

func TestRunOffEndOfMemory(t *testing.T) {
	// jmp 32767 lands on a noop at the top word; stepping past it
	// leaves the address space, which stops the run cleanly.
	machine, _ := testMachine(true, 6, 32767)
	machine.mem.PutWord(32767, 21)
	machine.Run()

	if machine.Status() != OK {
		t.Errorf("status got %v want OK", machine.Status())
	}
	if machine.Halted() {
		t.Error("running off the end is not a halt instruction")
	}
}

func TestResetKeepsStack(t *testing.T) {
	// push 7; halt
	machine, _ := testMachine(true, 2, 7, 0)
	machine.SetReg(3, 99)
	machine.Run()

	machine.Reset()

	if machine.PC() != 0 {
		t.Errorf("PC got %d want 0", machine.PC())
	}
	if machine.Halted() {
		t.Error("halt flag should clear on reset")
	}
	if machine.Reg(3) != 0 {
		t.Errorf("register got %d want 0", machine.Reg(3))
	}
	if machine.mem.GetWord(0) != 0 {
		t.Error("memory should clear on reset")
	}
	if machine.StackEmpty() {
		t.Error("reset must not touch the stack")
	}
}

func TestResetAfterFaultIsNoop(t *testing.T) {
	machine, _ := testMachine(true, 22)
	machine.Run()

	if machine.Status() != InvalidInstruction {
		t.Errorf("status got %v want InvalidInstruction", machine.Status())
	}

	machine.Reset()
	if !machine.Halted() {
		t.Error("reset must not clear a faulted machine")
	}
}

func TestOperandClassification(t *testing.T) {
	machine, _ := testMachine(true)
	machine.SetReg(0, 123)
	machine.SetReg(7, 456)

	if v, ok := machine.number(32767); !ok || v != 32767 {
		t.Errorf("32767 got %d,%v want 32767,true", v, ok)
	}
	if v, ok := machine.number(32768); !ok || v != 123 {
		t.Errorf("32768 got %d,%v want 123,true", v, ok)
	}
	if v, ok := machine.number(32775); !ok || v != 456 {
		t.Errorf("32775 got %d,%v want 456,true", v, ok)
	}
	if _, ok := machine.number(32776); ok {
		t.Error("32776 should not resolve")
	}

	if r, ok := regIndex(32768); !ok || r != 0 {
		t.Errorf("32768 got %d,%v want 0,true", r, ok)
	}
	if r, ok := regIndex(32775); !ok || r != 7 {
		t.Errorf("32775 got %d,%v want 7,true", r, ok)
	}
	if _, ok := regIndex(32767); ok {
		t.Error("32767 is a literal, not a register")
	}
	if _, ok := regIndex(32776); ok {
		t.Error("32776 is malformed")
	}
}

func TestNoopChangesOnlyPC(t *testing.T) {
	machine, _ := testMachine(true, 21, 21, 0)
	machine.SetReg(2, 5)
	machine.Step()

	if machine.PC() != 1 {
		t.Errorf("PC got %d want 1", machine.PC())
	}
	if machine.Reg(2) != 5 {
		t.Error("noop must not touch registers")
	}
	if !machine.StackEmpty() {
		t.Error("noop must not touch the stack")
	}
}

func TestArithmeticStaysInRange(t *testing.T) {
	// Exercise every arithmetic opcode with the largest operands and
	// check the destination stays below 32768.
	progs := [][]uint16{
		{9, 32768, 32767, 32767, 0},  // add
		{10, 32768, 32767, 32767, 0}, // mult
		{11, 32768, 32767, 3, 0},     // mod
		{12, 32768, 32767, 21845, 0}, // and
		{13, 32768, 32767, 21845, 0}, // or
		{14, 32768, 32767, 0},        // not
	}
	for _, prog := range progs {
		machine, _ := testMachine(true, prog...)
		machine.Run()
		if machine.Status() != OK {
			t.Errorf("op %d: status got %v want OK", prog[0], machine.Status())
		}
		if v := machine.Reg(0); v > 32767 {
			t.Errorf("op %d: result %d out of range", prog[0], v)
		}
	}
}

func TestDumpMemory(t *testing.T) {
	machine, _ := testMachine(true, 21, 0)
	var buf bytes.Buffer
	machine.DumpMemory(&buf)

	want := "    0: 21\n    1: 0\n"
	if got := buf.String(); got != want {
		t.Errorf("dump got %q want %q", got, want)
	}
}
