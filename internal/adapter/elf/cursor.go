// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package elf

import "encoding/binary"

// cursor reads fixed-width integers out of a byte slice in the byte order
// the ident block selected. The error is sticky: after the first short read
// every further call returns zero and decode paths check err once at the end.
type cursor struct {
	data  []byte
	off   int
	order binary.ByteOrder
	err   error
}

func newCursor(data []byte, off int, order binary.ByteOrder) *cursor {
	return &cursor{data: data, off: off, order: order}
}

func (c *cursor) take(n int) []byte {
	if c.err != nil {
		return nil
	}
	if c.off < 0 || c.off+n > len(c.data) {
		c.err = ErrTruncated
		return nil
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b
}

func (c *cursor) u8() uint8 {
	b := c.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (c *cursor) u16() uint16 {
	b := c.take(2)
	if b == nil {
		return 0
	}
	return c.order.Uint16(b)
}

func (c *cursor) u32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}
	return c.order.Uint32(b)
}

func (c *cursor) u64() uint64 {
	b := c.take(8)
	if b == nil {
		return 0
	}
	return c.order.Uint64(b)
}
