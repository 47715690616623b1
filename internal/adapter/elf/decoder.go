// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

// Package elf decodes 64-bit ELF object files: the main header, the section
// header table and every symbol table, with names resolved through the
// string tables the format points at. Byte order is taken from the ident
// block, so foreign-endian objects decode the same as native ones.
package elf

import (
	"encoding/binary"
	"errors"
	"fmt"

	"elfscan/internal/domain/model"
	"elfscan/internal/domain/ports"
)

var (
	// ErrNotELF means the file does not start with the ELF magic.
	ErrNotELF = errors.New("not an ELF file")
	// ErrTruncated means a header, table or string ran past the end of the file.
	ErrTruncated = errors.New("truncated ELF object")
	// ErrUnsupportedClass means the ident class byte is not ELFCLASS64.
	ErrUnsupportedClass = errors.New("unsupported ELF class")
	// ErrBadByteOrder means the ident data byte names no known encoding.
	ErrBadByteOrder = errors.New("unknown ELF data encoding")
	// ErrBadFormat means a structurally invalid field, such as a string table
	// index pointing at a non-strtab section.
	ErrBadFormat = errors.New("malformed ELF object")
)

// Fixed structure sizes of the 64-bit layouts.
const (
	identSize  = 16
	headerSize = 64
	shdrSize   = 64
	symSize    = 24
)

// ident block offsets.
const (
	idxClass   = 4
	idxData    = 5
	idxVersion = 6
	idxOSABI   = 7
)

var elfMagic = [4]byte{0x7f, 'E', 'L', 'F'}

type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

var _ ports.ObjectDecoder = (*Decoder)(nil)

func (d *Decoder) Name() string {
	return "elf64"
}

// Supports reports whether data starts with the ELF magic. It deliberately
// checks nothing else so unsupported variants surface as decode errors
// instead of being silently skipped.
func (d *Decoder) Supports(data []byte) bool {
	return len(data) >= len(elfMagic) &&
		data[0] == elfMagic[0] &&
		data[1] == elfMagic[1] &&
		data[2] == elfMagic[2] &&
		data[3] == elfMagic[3]
}

// Decode parses the full object: main header, section header table, section
// names, and the entries of every symtab/dynsym section.
func (d *Decoder) Decode(path string, data []byte) (*model.Object, error) {
	hdr, order, err := decodeHeader(data)
	if err != nil {
		return nil, fmt.Errorf("decode header of %s: %w", path, err)
	}

	sections, err := decodeSections(data, order, hdr)
	if err != nil {
		return nil, fmt.Errorf("decode sections of %s: %w", path, err)
	}

	symbols, err := decodeSymbols(data, order, sections)
	if err != nil {
		return nil, fmt.Errorf("decode symbols of %s: %w", path, err)
	}

	return &model.Object{
		Path:     path,
		Header:   hdr,
		Sections: sections,
		Symbols:  symbols,
	}, nil
}

// decodeHeader validates the ident block and reads the remaining ELF64
// header fields in the byte order the ident selects.
func decodeHeader(data []byte) (model.Header, binary.ByteOrder, error) {
	var hdr model.Header

	if len(data) < len(elfMagic) ||
		data[0] != elfMagic[0] || data[1] != elfMagic[1] ||
		data[2] != elfMagic[2] || data[3] != elfMagic[3] {
		return hdr, nil, ErrNotELF
	}
	if len(data) < identSize {
		return hdr, nil, ErrTruncated
	}

	class := model.Class(data[idxClass])
	if class != model.Class64 {
		return hdr, nil, fmt.Errorf("%w: %s", ErrUnsupportedClass, class)
	}

	var order binary.ByteOrder
	encoding := model.ByteOrder(data[idxData])
	switch encoding {
	case model.DataLSB:
		order = binary.LittleEndian
	case model.DataMSB:
		order = binary.BigEndian
	default:
		return hdr, nil, fmt.Errorf("%w: %s", ErrBadByteOrder, encoding)
	}

	if len(data) < headerSize {
		return hdr, nil, ErrTruncated
	}

	cur := newCursor(data, identSize, order)
	hdr = model.Header{
		Class:     class,
		Data:      encoding,
		OSABI:     data[idxOSABI],
		Type:      model.FileType(cur.u16()),
		Machine:   model.Machine(cur.u16()),
		Version:   cur.u32(),
		Entry:     cur.u64(),
		Phoff:     cur.u64(),
		Shoff:     cur.u64(),
		Flags:     cur.u32(),
		Ehsize:    cur.u16(),
		Phentsize: cur.u16(),
		Phnum:     cur.u16(),
		Shentsize: cur.u16(),
		Shnum:     cur.u16(),
		Shstrndx:  cur.u16(),
	}
	if cur.err != nil {
		return hdr, nil, cur.err
	}
	return hdr, order, nil
}

// sectionData returns the file bytes a section occupies. Nobits sections
// have a size but no file contents.
func sectionData(data []byte, s model.Section) ([]byte, error) {
	if s.Type == model.SectionNobits || s.Size == 0 {
		return nil, nil
	}
	end := s.Offset + s.Size
	if end < s.Offset || end > uint64(len(data)) {
		return nil, fmt.Errorf("%w: section %q spans [%d, %d) beyond %d bytes",
			ErrTruncated, s.Name, s.Offset, end, len(data))
	}
	return data[s.Offset:end], nil
}

// readString reads a NUL-terminated string out of a string table blob.
func readString(strtab []byte, off uint32) (string, error) {
	if uint64(off) >= uint64(len(strtab)) {
		return "", fmt.Errorf("%w: string offset %d beyond table of %d bytes",
			ErrBadFormat, off, len(strtab))
	}
	for i := int(off); i < len(strtab); i++ {
		if strtab[i] == 0 {
			return string(strtab[off:i]), nil
		}
	}
	return "", fmt.Errorf("%w: unterminated string at offset %d", ErrTruncated, off)
}
