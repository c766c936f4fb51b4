/*
 * Synacor VM - Instruction handlers
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
	op "github.com/rcornwell/synacor/emu/opcode"
)

// Fetch the operand word k positions past the opcode.
func (vm *VM) arg(k uint16) uint16 {
	return vm.mem.GetWord(vm.pc + k)
}

// Dispatch one instruction. Handlers advance the PC by the width of
// the instruction on success, or overwrite it with a jump target.
func (vm *VM) dispatch(code uint16) {
	switch code {
	case op.OpHALT:
		vm.opHalt()
	case op.OpSET:
		vm.opSet()
	case op.OpPUSH:
		vm.opPush()
	case op.OpPOP:
		vm.opPop()
	case op.OpEQ:
		vm.opEq()
	case op.OpGT:
		vm.opGt()
	case op.OpJMP:
		vm.opJmp()
	case op.OpJT:
		vm.opJt()
	case op.OpJF:
		vm.opJf()
	case op.OpADD:
		vm.opAdd()
	case op.OpMULT:
		vm.opMult()
	case op.OpMOD:
		vm.opMod()
	case op.OpAND:
		vm.opAnd()
	case op.OpOR:
		vm.opOr()
	case op.OpNOT:
		vm.opNot()
	case op.OpRMEM:
		vm.opRmem()
	case op.OpWMEM:
		vm.opWmem()
	case op.OpCALL:
		vm.opCall()
	case op.OpRET:
		vm.opRet()
	case op.OpOUT:
		vm.opOut()
	case op.OpIN:
		vm.opIn()
	case op.OpNOOP:
		vm.opNoop()
	default:
		vm.fault(InvalidInstruction)
	}
}

// halt: set the halt flag.
func (vm *VM) opHalt() {
	vm.halted = true
}

// set a b: load register a with value b.
func (vm *VM) opSet() {
	reg, ok := vm.dstReg(vm.arg(1), 3)
	if !ok {
		return
	}
	b, ok := vm.value(vm.arg(2), 3)
	if !ok {
		return
	}
	vm.regs[reg] = b
	vm.pc += 3
}

// push a: push value a onto the stack.
func (vm *VM) opPush() {
	a, ok := vm.value(vm.arg(1), 2)
	if !ok {
		return
	}
	if !vm.stack.Push(a) {
		vm.operandFault(StackPushFail, 2)
		return
	}
	vm.pc += 2
}

// pop a: remove the top of the stack into register a. An empty
// stack is a fault here, unlike ret.
func (vm *VM) opPop() {
	reg, ok := vm.dstReg(vm.arg(1), 2)
	if !ok {
		return
	}
	v, ok := vm.stack.Pop()
	if !ok {
		vm.operandFault(StackPopFail, 2)
		return
	}
	vm.regs[reg] = v
	vm.pc += 2
}

// eq a b c: register a gets 1 when b equals c, else 0.
func (vm *VM) opEq() {
	reg, b, c, ok := vm.threeOperands()
	if !ok {
		return
	}
	vm.regs[reg] = 0
	if b == c {
		vm.regs[reg] = 1
	}
	vm.pc += 4
}

// gt a b c: register a gets 1 when b is greater than c, else 0.
func (vm *VM) opGt() {
	reg, b, c, ok := vm.threeOperands()
	if !ok {
		return
	}
	vm.regs[reg] = 0
	if b > c {
		vm.regs[reg] = 1
	}
	vm.pc += 4
}

// jmp a: jump to a.
func (vm *VM) opJmp() {
	a, ok := vm.value(vm.arg(1), 2)
	if !ok {
		return
	}
	vm.pc = a
}

// jt a b: jump to b when a is nonzero.
func (vm *VM) opJt() {
	a, ok := vm.value(vm.arg(1), 3)
	if !ok {
		return
	}
	b, ok := vm.value(vm.arg(2), 3)
	if !ok {
		return
	}
	if a != 0 {
		vm.pc = b
		return
	}
	vm.pc += 3
}

// jf a b: jump to b when a is zero.
func (vm *VM) opJf() {
	a, ok := vm.value(vm.arg(1), 3)
	if !ok {
		return
	}
	b, ok := vm.value(vm.arg(2), 3)
	if !ok {
		return
	}
	if a == 0 {
		vm.pc = b
		return
	}
	vm.pc += 3
}

// add a b c: register a gets b plus c, modulo 32768.
func (vm *VM) opAdd() {
	reg, b, c, ok := vm.threeOperands()
	if !ok {
		return
	}
	vm.regs[reg] = uint16((uint32(b) + uint32(c)) % Modulo)
	vm.pc += 4
}

// mult a b c: register a gets b times c, modulo 32768.
func (vm *VM) opMult() {
	reg, b, c, ok := vm.threeOperands()
	if !ok {
		return
	}
	vm.regs[reg] = uint16(uint32(b) * uint32(c) % Modulo)
	vm.pc += 4
}

// mod a b c: register a gets the remainder of b divided by c. A
// zero divisor is outside the architecture; treat it as a malformed
// operand rather than trap.
func (vm *VM) opMod() {
	reg, b, c, ok := vm.threeOperands()
	if !ok {
		return
	}
	if c == 0 {
		vm.operandFault(InvalidNum, 4)
		return
	}
	vm.regs[reg] = b % c
	vm.pc += 4
}

// and a b c: register a gets the bitwise and of b and c.
func (vm *VM) opAnd() {
	reg, b, c, ok := vm.threeOperands()
	if !ok {
		return
	}
	vm.regs[reg] = b & c
	vm.pc += 4
}

// or a b c: register a gets the bitwise or of b and c.
func (vm *VM) opOr() {
	reg, b, c, ok := vm.threeOperands()
	if !ok {
		return
	}
	vm.regs[reg] = b | c
	vm.pc += 4
}

// not a b: register a gets the 15-bit inverse of b.
func (vm *VM) opNot() {
	reg, ok := vm.dstReg(vm.arg(1), 3)
	if !ok {
		return
	}
	b, ok := vm.value(vm.arg(2), 3)
	if !ok {
		return
	}
	vm.regs[reg] = b ^ MaxLiteral
	vm.pc += 3
}

// rmem a b: register a gets the memory word at address b.
func (vm *VM) opRmem() {
	reg, ok := vm.dstReg(vm.arg(1), 3)
	if !ok {
		return
	}
	b, ok := vm.value(vm.arg(2), 3)
	if !ok {
		return
	}
	vm.regs[reg] = vm.mem.GetWord(b)
	vm.pc += 3
}

// wmem a b: the memory word at address a gets value b.
func (vm *VM) opWmem() {
	a, ok := vm.value(vm.arg(1), 3)
	if !ok {
		return
	}
	b, ok := vm.value(vm.arg(2), 3)
	if !ok {
		return
	}
	vm.mem.PutWord(a, b)
	vm.pc += 3
}

// call a: push the address of the next instruction, jump to a.
func (vm *VM) opCall() {
	a, ok := vm.value(vm.arg(1), 2)
	if !ok {
		return
	}
	if !vm.stack.Push(vm.pc + 2) {
		vm.operandFault(StackPushFail, 2)
		return
	}
	vm.pc = a
}

// ret: pop the stack into the PC. An empty stack halts cleanly;
// real programs end this way.
func (vm *VM) opRet() {
	v, ok := vm.stack.Pop()
	if !ok {
		vm.halted = true
		return
	}
	vm.pc = v
}

// out a: write the character with code a, truncated to one byte.
func (vm *VM) opOut() {
	a, ok := vm.value(vm.arg(1), 2)
	if !ok {
		return
	}
	if vm.out != nil {
		vm.out.Write([]byte{byte(a)})
	}
	vm.pc += 2
}

// in a: read one character into register a. End of input reads as
// code 0.
func (vm *VM) opIn() {
	reg, ok := vm.dstReg(vm.arg(1), 2)
	if !ok {
		return
	}
	var ch byte
	if vm.in != nil {
		if b, err := vm.in.ReadByte(); err == nil {
			ch = b
		}
	}
	vm.regs[reg] = uint16(ch)
	vm.pc += 2
}

// noop: advance past the opcode.
func (vm *VM) opNoop() {
	vm.pc++
}

// Resolve the register/value/value operand triple shared by the
// comparison, arithmetic and logical instructions.
func (vm *VM) threeOperands() (reg, b, c uint16, ok bool) {
	reg, ok = vm.dstReg(vm.arg(1), 4)
	if !ok {
		return 0, 0, 0, false
	}
	b, ok = vm.value(vm.arg(2), 4)
	if !ok {
		return 0, 0, 0, false
	}
	c, ok = vm.value(vm.arg(3), 4)
	if !ok {
		return 0, 0, 0, false
	}
	return reg, b, c, true
}
