// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytecode

import "testing"

func TestDecodeGoto(t *testing.T) {
	// 10 nop bytes as padding, then goto +5 at offset 10.
	code := make([]byte, 10)
	code = append(code, 0xa7, 0x00, 0x05)

	c, err := Decode(code)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	instr, ok := c.At(10)
	if !ok {
		t.Fatalf("no instruction at offset 10")
	}
	if instr.Op != OpGoto {
		t.Fatalf("Op = %v, want OpGoto", instr.Op)
	}
	if instr.Offset != 5 {
		t.Errorf("Offset = %d, want 5", instr.Offset)
	}
	if target := 10 + instr.Offset; target != 15 {
		t.Errorf("absolute target = %d, want 15", target)
	}
}

func TestDecodeLookupSwitchAlignment(t *testing.T) {
	// lookupswitch at offset 0 for simplicity: opcode, 3 pad bytes,
	// default=100, npairs=2, (1,10), (2,20).
	code := []byte{
		0xab,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x64,
		0x00, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x0a,
		0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x14,
	}
	c, err := Decode(code)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	instr, ok := c.At(0)
	if !ok {
		t.Fatalf("no instruction at offset 0")
	}
	if instr.Op != OpLookupSwitch {
		t.Fatalf("Op = %v, want OpLookupSwitch", instr.Op)
	}
	if instr.Default != 100 {
		t.Errorf("Default = %d, want 100", instr.Default)
	}
	if len(instr.Cases) != 2 {
		t.Fatalf("len(Cases) = %d, want 2", len(instr.Cases))
	}
	if instr.Cases[0] != (SwitchCase{Match: 1, Offset: 10}) {
		t.Errorf("Cases[0] = %+v, want {1 10}", instr.Cases[0])
	}
	if instr.Cases[1] != (SwitchCase{Match: 2, Offset: 20}) {
		t.Errorf("Cases[1] = %+v, want {2 20}", instr.Cases[1])
	}
}

func TestDecodeShortFormLoadMatchesGenericOp(t *testing.T) {
	code := []byte{0x1a} // iload_0
	c, err := Decode(code)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	instr, _ := c.At(0)
	if instr.Op != OpILoad {
		t.Errorf("Op = %v, want OpILoad", instr.Op)
	}
	if instr.Index != 0 {
		t.Errorf("Index = %d, want 0", instr.Index)
	}
}

func TestDecodeInvokeInterfaceSkipsZeroByte(t *testing.T) {
	code := []byte{0xb9, 0x00, 0x07, 0x02, 0x00}
	c, err := Decode(code)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	instr, _ := c.At(0)
	if instr.Op != OpInvokeInterface {
		t.Fatalf("Op = %v, want OpInvokeInterface", instr.Op)
	}
	if instr.Index != 7 {
		t.Errorf("Index = %d, want 7", instr.Index)
	}
	if instr.Count != 2 {
		t.Errorf("Count = %d, want 2", instr.Count)
	}
}

func TestDecodeUnknownOpcodeFails(t *testing.T) {
	code := []byte{0xfe}
	if _, err := Decode(code); err == nil {
		t.Fatalf("expected error for unknown opcode 0xfe")
	}
}

func TestDecodeIincSignExtends(t *testing.T) {
	code := []byte{0x84, 0x01, 0xff} // iinc slot 1 by -1
	c, err := Decode(code)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	instr, _ := c.At(0)
	if instr.Op != OpIinc {
		t.Fatalf("Op = %v, want OpIinc", instr.Op)
	}
	if instr.Index != 1 {
		t.Errorf("Index = %d, want 1", instr.Index)
	}
	if instr.Offset != -1 {
		t.Errorf("Offset = %d, want -1", instr.Offset)
	}
}
