// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

// Package elftest assembles small valid ELF64 objects in memory so decoder
// and use-case tests do not need a C toolchain on the machine running them.
package elftest

import (
	"encoding/binary"

	"elfscan/internal/domain/model"
)

const (
	headerSize = 64
	shdrSize   = 64
	symSize    = 24
)

// Section describes one section to place in the object. Data may be nil for
// empty or nobits sections.
type Section struct {
	Name    string
	Type    model.SectionType
	Flags   uint64
	Addr    uint64
	Data    []byte
	Link    uint32
	Info    uint32
	Align   uint64
	Entsize uint64
}

// Symbol describes one symbol table entry. Local symbols must be added
// before globals, as the format requires.
type Symbol struct {
	Name  string
	Bind  model.SymbolBind
	Type  model.SymbolType
	Other uint8
	Shndx uint16
	Value uint64
	Size  uint64
}

// Builder accumulates sections and symbols and assembles the object bytes.
// The null section, .symtab, .strtab and .shstrtab are added automatically.
type Builder struct {
	order    binary.ByteOrder
	fileType model.FileType
	machine  model.Machine
	sections []Section
	symbols  []Symbol
}

func NewBuilder() *Builder {
	return &Builder{
		order:    binary.LittleEndian,
		fileType: model.FileTypeRel,
		machine:  model.MachineX86_64,
	}
}

func (b *Builder) WithOrder(order binary.ByteOrder) *Builder {
	b.order = order
	return b
}

func (b *Builder) WithFileType(t model.FileType) *Builder {
	b.fileType = t
	return b
}

func (b *Builder) WithMachine(m model.Machine) *Builder {
	b.machine = m
	return b
}

func (b *Builder) AddSection(s Section) *Builder {
	b.sections = append(b.sections, s)
	return b
}

func (b *Builder) AddSymbol(s Symbol) *Builder {
	b.symbols = append(b.symbols, s)
	return b
}

// Bytes assembles the object. Layout: ELF header, section contents in the
// order sections were added (symtab, strtab, shstrtab last), then the
// section header table.
func (b *Builder) Bytes() []byte {
	sections := append([]Section(nil), b.sections...)

	if len(b.symbols) > 0 {
		strtab := []byte{0}
		symtab := make([]byte, symSize) // null entry at index 0
		firstGlobal := uint32(1)
		countingLocals := true

		for _, sym := range b.symbols {
			nameOff := uint32(len(strtab))
			strtab = append(strtab, sym.Name...)
			strtab = append(strtab, 0)

			ent := make([]byte, symSize)
			b.order.PutUint32(ent[0:4], nameOff)
			ent[4] = uint8(sym.Bind)<<4 | uint8(sym.Type)&0xf
			ent[5] = sym.Other
			b.order.PutUint16(ent[6:8], sym.Shndx)
			b.order.PutUint64(ent[8:16], sym.Value)
			b.order.PutUint64(ent[16:24], sym.Size)
			symtab = append(symtab, ent...)

			if countingLocals && sym.Bind == model.BindLocal {
				firstGlobal++
			} else {
				countingLocals = false
			}
		}

		// symtab links to the strtab that follows it.
		strtabIndex := uint32(len(sections) + 2)
		sections = append(sections,
			Section{
				Name:    ".symtab",
				Type:    model.SectionSymtab,
				Data:    symtab,
				Link:    strtabIndex,
				Info:    firstGlobal,
				Align:   8,
				Entsize: symSize,
			},
			Section{
				Name:  ".strtab",
				Type:  model.SectionStrtab,
				Data:  strtab,
				Align: 1,
			},
		)
	}

	sections = append(sections, Section{
		Name:  ".shstrtab",
		Type:  model.SectionStrtab,
		Align: 1,
	})

	// Section name table covers the null section (empty name) plus every
	// named section, including .shstrtab itself.
	shstrtab := []byte{0}
	nameOffsets := make([]uint32, len(sections))
	for i, s := range sections {
		nameOffsets[i] = uint32(len(shstrtab))
		shstrtab = append(shstrtab, s.Name...)
		shstrtab = append(shstrtab, 0)
	}
	sections[len(sections)-1].Data = shstrtab

	shnum := len(sections) + 1 // plus the null section
	shstrndx := uint16(shnum - 1)

	// Lay out contents after the header, then the section header table,
	// 8-byte aligned.
	offsets := make([]uint64, len(sections))
	off := uint64(headerSize)
	for i, s := range sections {
		offsets[i] = off
		off += uint64(len(s.Data))
	}
	shoff := (off + 7) &^ 7

	buf := make([]byte, shoff+uint64(shnum)*shdrSize)

	copy(buf[0:4], []byte{0x7f, 'E', 'L', 'F'})
	buf[4] = uint8(model.Class64)
	buf[5] = uint8(model.DataLSB)
	if b.order == binary.ByteOrder(binary.BigEndian) {
		buf[5] = uint8(model.DataMSB)
	}
	buf[6] = 1 // EV_CURRENT

	b.order.PutUint16(buf[16:18], uint16(b.fileType))
	b.order.PutUint16(buf[18:20], uint16(b.machine))
	b.order.PutUint32(buf[20:24], 1)
	b.order.PutUint64(buf[40:48], shoff)
	b.order.PutUint16(buf[52:54], headerSize)
	b.order.PutUint16(buf[58:60], shdrSize)
	b.order.PutUint16(buf[60:62], uint16(shnum))
	b.order.PutUint16(buf[62:64], shstrndx)

	for i, s := range sections {
		copy(buf[offsets[i]:], s.Data)

		sh := buf[shoff+uint64(i+1)*shdrSize:]
		b.order.PutUint32(sh[0:4], nameOffsets[i])
		b.order.PutUint32(sh[4:8], uint32(s.Type))
		b.order.PutUint64(sh[8:16], s.Flags)
		b.order.PutUint64(sh[16:24], s.Addr)
		b.order.PutUint64(sh[24:32], offsets[i])
		b.order.PutUint64(sh[32:40], uint64(len(s.Data)))
		b.order.PutUint32(sh[40:44], s.Link)
		b.order.PutUint32(sh[44:48], s.Info)
		b.order.PutUint64(sh[48:56], s.Align)
		b.order.PutUint64(sh[56:64], s.Entsize)
	}

	return buf
}

// SampleObject mirrors the object a compiler produces for tests/data/main.c:
// a relocatable x86-64 file whose symbol table carries the file entry plus
// local_f (local func), global_f and main (global funcs). Section index 2
// is .data, matching what toolchains emit for that source.
func SampleObject(order binary.ByteOrder) []byte {
	text := make([]byte, 46)
	for i := range text {
		text[i] = 0x90 // nop
	}
	text[14], text[29], text[45] = 0xc3, 0xc3, 0xc3 // ret

	return NewBuilder().
		WithOrder(order).
		AddSection(Section{
			Name:  ".text",
			Type:  model.SectionProgbits,
			Flags: model.SectionFlagAlloc | model.SectionFlagExecinstr,
			Data:  text,
			Align: 16,
		}).
		AddSection(Section{
			Name:  ".data",
			Type:  model.SectionProgbits,
			Flags: model.SectionFlagWrite | model.SectionFlagAlloc,
			Align: 8,
		}).
		AddSymbol(Symbol{Name: "main.c", Bind: model.BindLocal, Type: model.SymFile, Shndx: model.ShnAbs}).
		AddSymbol(Symbol{Name: "local_f", Bind: model.BindLocal, Type: model.SymFunc, Shndx: 1, Value: 0, Size: 15}).
		AddSymbol(Symbol{Name: "global_f", Bind: model.BindGlobal, Type: model.SymFunc, Shndx: 1, Value: 15, Size: 15}).
		AddSymbol(Symbol{Name: "main", Bind: model.BindGlobal, Type: model.SymFunc, Shndx: 1, Value: 30, Size: 16}).
		Bytes()
}
