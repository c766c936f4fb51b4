/*
 * Synacor VM - Machine state and execution loop
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
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rcornwell/synacor/emu/loader"
	mem "github.com/rcornwell/synacor/emu/memory"
	"github.com/rcornwell/synacor/emu/stack"
)

/*
   The machine is 16-bit word oriented with a 15-bit address space.
   Memory holds 32,768 words, there are eight registers and an
   unbounded auxiliary stack. Operand words 0..32767 are literals,
   32768..32775 name registers R0..R7, anything above is malformed.
   Arithmetic is modulo 32768. Address 0 is the entry point.
*/

// NumRegs is the number of machine registers.
const NumRegs = 8

// Status enumerates machine fault kinds.
type Status int

const (
	OK Status = iota   // No fault.
	StackEmpty         // Pop on empty stack.
	StackAllocFail     // Stack backing store growth failed.
	InvalidInstruction // Opcode outside 0..21.
	LoadFail           // Binary could not be opened or read.
	MemoryOverflow     // Binary exceeds memory.
	InvalidReg         // Operand required a register.
	InvalidNum         // Operand above 32775.
	StackPushFail      // Stack fault surfaced through push.
	StackPopFail       // Stack fault surfaced through pop.
)

var statusMessages = map[Status]string{
	OK:                 "machine is ok",
	StackEmpty:         "pop on empty stack",
	StackAllocFail:     "stack allocation failed",
	InvalidInstruction: "invalid instruction",
	LoadFail:           "binary image could not be loaded",
	MemoryOverflow:     "binary image exceeds memory",
	InvalidReg:         "operand is not a register",
	InvalidNum:         "operand is not a valid number",
	StackPushFail:      "stack push failed",
	StackPopFail:       "stack pop failed",
}

func (s Status) String() string {
	msg, ok := statusMessages[s]
	if !ok {
		return "undefined machine status"
	}
	return msg
}

// VM is one machine instance. Instances are independent; each owns
// its memory, registers and stack. A single goroutine should drive
// a given instance.
type VM struct {
	mem    mem.Memory
	regs   [NumRegs]uint16
	stack  *stack.Stack
	pc     uint16
	halted bool
	status Status
	strict bool
	loaded int

	in  io.ByteReader
	out io.Writer
}

// New creates a machine with zeroed memory and registers and an
// empty stack. With strict set, a malformed operand or a stack
// fault inside a handler halts the machine; otherwise the offending
// instruction is skipped and execution continues.
func New(strict bool) *VM {
	vm := &VM{
		stack:  stack.New(),
		strict: strict,
	}
	return vm
}

// Reset returns memory, registers, PC and the halt flag to the
// start state. The stack is left alone; reset only defines a fresh
// starting point for a subsequent load. No effect once faulted.
func (vm *VM) Reset() {
	if vm.status != OK {
		return
	}
	vm.halted = false
	vm.pc = 0
	vm.loaded = 0
	vm.mem.Clear()
	for i := range vm.regs {
		vm.regs[i] = 0
	}
}

// SetInput replaces the byte source the IN instruction reads from.
func (vm *VM) SetInput(r io.ByteReader) {
	vm.in = r
}

// SetOutput replaces the byte sink the OUT instruction writes to.
func (vm *VM) SetOutput(w io.Writer) {
	vm.out = w
}

// SetStackLimit bounds the operand stack depth in words.
func (vm *VM) SetStackLimit(n int) {
	vm.stack.SetLimit(n)
}

// Load reads the binary image at path into memory.
func (vm *VM) Load(path string) error {
	if vm.status != OK {
		return errors.New(vm.status.String())
	}
	words, err := loader.LoadFile(path, &vm.mem)
	if err != nil {
		if errors.Is(err, loader.ErrTooLarge) {
			vm.status = MemoryOverflow
		} else {
			vm.status = LoadFail
		}
		return err
	}
	vm.loaded = words
	slog.Debug("image loaded", slog.String("path", path), slog.Int("words", words))
	return nil
}

// LoadImage reads a binary image from r into memory.
func (vm *VM) LoadImage(r io.Reader) error {
	if vm.status != OK {
		return errors.New(vm.status.String())
	}
	words, err := loader.Load(r, &vm.mem)
	if err != nil {
		if errors.Is(err, loader.ErrTooLarge) {
			vm.status = MemoryOverflow
		} else {
			vm.status = LoadFail
		}
		return err
	}
	vm.loaded = words
	return nil
}

// LoadTest installs the architecture's documentation example: add
// the value 4 to the character in R1 and print the result. With R1
// preloaded with 'A' the machine prints 'E' and halts on the zero
// word that follows the program.
func (vm *VM) LoadTest() {
	vm.Reset()
	prog := []uint16{9, 32768, 32769, 4, 19, 32768}
	for i, w := range prog {
		vm.mem.PutWord(uint16(i), w)
	}
	vm.regs[1] = 'A'
	vm.loaded = len(prog)
}

// Halted reports whether the halt flag is set.
func (vm *VM) Halted() bool {
	return vm.halted
}

// Status returns the machine fault kind, OK when none.
func (vm *VM) Status() Status {
	return vm.status
}

// ErrorMessage returns the human readable fault description.
func (vm *VM) ErrorMessage() string {
	return vm.status.String()
}

// PC returns the program counter.
func (vm *VM) PC() uint16 {
	return vm.pc
}

// Reg returns the contents of register n.
func (vm *VM) Reg(n int) uint16 {
	return vm.regs[n&(NumRegs-1)]
}

// SetReg presets register n, for hosts that seed state before a run.
func (vm *VM) SetReg(n int, v uint16) {
	vm.regs[n&(NumRegs-1)] = v
}

// StackEmpty reports whether the operand stack holds no words.
func (vm *VM) StackEmpty() bool {
	return vm.stack.Empty()
}

// Run dispatches instructions until the machine halts, faults, or
// the PC leaves the address space. Running off the end of memory is
// a clean stop, not a fault.
func (vm *VM) Run() Status {
	for vm.status == OK && !vm.halted && uint32(vm.pc) < mem.Size {
		vm.Step()
	}
	if vm.status != OK {
		slog.Error("machine fault",
			slog.String("status", vm.status.String()),
			slog.Int("pc", int(vm.pc)))
	} else {
		slog.Debug("machine halted", slog.Int("pc", int(vm.pc)))
	}
	return vm.status
}

// Step executes the single instruction at the PC.
func (vm *VM) Step() {
	if vm.status != OK || vm.halted {
		return
	}
	vm.dispatch(vm.mem.GetWord(vm.pc))
}

// Record a terminal fault.
func (vm *VM) fault(st Status) {
	vm.status = st
	vm.halted = true
}

// React to a bad operand or a stack subfault inside a handler.
// Strict machines record the fault and halt; lenient ones step over
// the full instruction width and continue.
func (vm *VM) operandFault(st Status, width uint16) {
	if vm.strict {
		vm.fault(st)
		return
	}
	vm.pc += width
}

// DumpMemory writes the populated prefix of memory as address/value
// pairs, one word per line.
func (vm *VM) DumpMemory(w io.Writer) {
	last := vm.loaded
	for i := int(mem.Size) - 1; i >= last; i-- {
		if vm.mem.GetWord(uint16(i)) != 0 {
			last = i + 1
			break
		}
	}
	for i := 0; i < last; i++ {
		fmt.Fprintf(w, "%5d: %d\n", i, vm.mem.GetWord(uint16(i)))
	}
}
