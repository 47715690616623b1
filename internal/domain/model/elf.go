// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package model

import "fmt"

// Class is the ELF file class from ident[4]: 32-bit or 64-bit layouts.
type Class uint8

const (
	ClassNone Class = 0
	Class32   Class = 1
	Class64   Class = 2
)

func (c Class) String() string {
	switch c {
	case Class32:
		return "ELF32"
	case Class64:
		return "ELF64"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// ByteOrder is the data encoding from ident[5]. It selects the byte order
// used for every multi-byte field after the ident block.
type ByteOrder uint8

const (
	DataNone ByteOrder = 0
	DataLSB  ByteOrder = 1
	DataMSB  ByteOrder = 2
)

func (b ByteOrder) String() string {
	switch b {
	case DataLSB:
		return "little endian"
	case DataMSB:
		return "big endian"
	default:
		return fmt.Sprintf("data(%d)", uint8(b))
	}
}

// FileType is the object file type from the e_type header field.
type FileType uint16

const (
	FileTypeNone FileType = 0
	FileTypeRel  FileType = 1
	FileTypeExec FileType = 2
	FileTypeDyn  FileType = 3
	FileTypeCore FileType = 4
)

func (t FileType) String() string {
	switch t {
	case FileTypeNone:
		return "unknown type"
	case FileTypeRel:
		return "relocatable file"
	case FileTypeExec:
		return "executable file"
	case FileTypeDyn:
		return "shared object file"
	case FileTypeCore:
		return "core file"
	default:
		return fmt.Sprintf("type(%d)", uint16(t))
	}
}

// Machine is the target architecture from the e_machine header field.
// Only the architectures that show up in practice around here get names;
// anything else renders as machine(N).
type Machine uint16

const (
	MachineNone    Machine = 0
	Machine386     Machine = 3
	MachineARM     Machine = 40
	MachineX86_64  Machine = 62
	MachineAArch64 Machine = 183
	MachineRISCV   Machine = 243
)

func (m Machine) String() string {
	switch m {
	case MachineNone:
		return "none"
	case Machine386:
		return "i386"
	case MachineARM:
		return "arm"
	case MachineX86_64:
		return "x86-64"
	case MachineAArch64:
		return "aarch64"
	case MachineRISCV:
		return "risc-v"
	default:
		return fmt.Sprintf("machine(%d)", uint16(m))
	}
}

// Header mirrors the ELF64 main header. Offsets and sizes are kept verbatim
// so a report can be cross-checked against readelf output.
type Header struct {
	Class     Class     `json:"class"`
	Data      ByteOrder `json:"data"`
	OSABI     uint8     `json:"osabi"`
	Type      FileType  `json:"type"`
	Machine   Machine   `json:"machine"`
	Version   uint32    `json:"version"`
	Entry     uint64    `json:"entry"`
	Phoff     uint64    `json:"phoff"`
	Shoff     uint64    `json:"shoff"`
	Flags     uint32    `json:"flags"`
	Ehsize    uint16    `json:"ehsize"`
	Phentsize uint16    `json:"phentsize"`
	Phnum     uint16    `json:"phnum"`
	Shentsize uint16    `json:"shentsize"`
	Shnum     uint16    `json:"shnum"`
	Shstrndx  uint16    `json:"shstrndx"`
}

// SectionType is the sh_type field of a section header.
type SectionType uint32

const (
	SectionNull     SectionType = 0
	SectionProgbits SectionType = 1
	SectionSymtab   SectionType = 2
	SectionStrtab   SectionType = 3
	SectionRela     SectionType = 4
	SectionHash     SectionType = 5
	SectionDynamic  SectionType = 6
	SectionNote     SectionType = 7
	SectionNobits   SectionType = 8
	SectionRel      SectionType = 9
	SectionShlib    SectionType = 10
	SectionDynsym   SectionType = 11
)

func (t SectionType) String() string {
	switch t {
	case SectionNull:
		return "null"
	case SectionProgbits:
		return "progbits"
	case SectionSymtab:
		return "symtab"
	case SectionStrtab:
		return "strtab"
	case SectionRela:
		return "rela"
	case SectionHash:
		return "hash"
	case SectionDynamic:
		return "dynamic"
	case SectionNote:
		return "note"
	case SectionNobits:
		return "nobits"
	case SectionRel:
		return "rel"
	case SectionShlib:
		return "shlib"
	case SectionDynsym:
		return "dynsym"
	default:
		return fmt.Sprintf("section(%d)", uint32(t))
	}
}

// Section header flag bits.
const (
	SectionFlagWrite     uint64 = 0x1
	SectionFlagAlloc     uint64 = 0x2
	SectionFlagExecinstr uint64 = 0x4
)

// Section is one decoded entry of the section header table. Name is already
// resolved through the section name string table.
type Section struct {
	Name      string      `json:"name"`
	NameIndex uint32      `json:"nameIndex"`
	Type      SectionType `json:"type"`
	Flags     uint64      `json:"flags"`
	Addr      uint64      `json:"addr"`
	Offset    uint64      `json:"offset"`
	Size      uint64      `json:"size"`
	Link      uint32      `json:"link"`
	Info      uint32      `json:"info"`
	Addralign uint64      `json:"addralign"`
	Entsize   uint64      `json:"entsize"`
}

// FlagString renders the W/A/X flag letters the way readelf abbreviates them.
func (s Section) FlagString() string {
	var out []byte
	if s.Flags&SectionFlagWrite != 0 {
		out = append(out, 'W')
	}
	if s.Flags&SectionFlagAlloc != 0 {
		out = append(out, 'A')
	}
	if s.Flags&SectionFlagExecinstr != 0 {
		out = append(out, 'X')
	}
	return string(out)
}

// SymbolBind is the binding half of a symbol's info byte (high nibble).
type SymbolBind uint8

const (
	BindLocal  SymbolBind = 0
	BindGlobal SymbolBind = 1
	BindWeak   SymbolBind = 2
)

func (b SymbolBind) String() string {
	switch b {
	case BindLocal:
		return "local"
	case BindGlobal:
		return "global"
	case BindWeak:
		return "weak"
	default:
		return fmt.Sprintf("bind(%d)", uint8(b))
	}
}

// SymbolType is the type half of a symbol's info byte (low nibble).
type SymbolType uint8

const (
	SymNoType  SymbolType = 0
	SymObject  SymbolType = 1
	SymFunc    SymbolType = 2
	SymSection SymbolType = 3
	SymFile    SymbolType = 4
)

func (t SymbolType) String() string {
	switch t {
	case SymNoType:
		return "notype"
	case SymObject:
		return "object"
	case SymFunc:
		return "func"
	case SymSection:
		return "section"
	case SymFile:
		return "file"
	default:
		return fmt.Sprintf("symtype(%d)", uint8(t))
	}
}

// SymbolVisibility is the low two bits of a symbol's st_other byte.
type SymbolVisibility uint8

const (
	VisDefault   SymbolVisibility = 0
	VisInternal  SymbolVisibility = 1
	VisHidden    SymbolVisibility = 2
	VisProtected SymbolVisibility = 3
)

func (v SymbolVisibility) String() string {
	switch v {
	case VisDefault:
		return "default"
	case VisInternal:
		return "internal"
	case VisHidden:
		return "hidden"
	case VisProtected:
		return "protected"
	default:
		return fmt.Sprintf("vis(%d)", uint8(v))
	}
}

// Special section indexes that can appear in a symbol's st_shndx field.
const (
	ShnUndef  uint16 = 0
	ShnAbs    uint16 = 0xfff1
	ShnCommon uint16 = 0xfff2
)

// Symbol is one decoded symbol table entry with its name resolved through the
// string table the owning symtab links to.
type Symbol struct {
	Name       string           `json:"name"`
	NameIndex  uint32           `json:"nameIndex"`
	Bind       SymbolBind       `json:"bind"`
	Type       SymbolType       `json:"symType"`
	Visibility SymbolVisibility `json:"visibility"`
	Shndx      uint16           `json:"shndx"`
	Value      uint64           `json:"value"`
	Size       uint64           `json:"size"`
}

// Object is one fully decoded ELF object file.
type Object struct {
	Path     string    `json:"path"`
	Header   Header    `json:"header"`
	Sections []Section `json:"sections"`
	Symbols  []Symbol  `json:"symbols"`
}

// Section returns the first section with the given name.
func (o *Object) Section(name string) (*Section, bool) {
	for i := range o.Sections {
		if o.Sections[i].Name == name {
			return &o.Sections[i], true
		}
	}
	return nil, false
}

// SymbolsByBind returns the symbols with the given binding, in table order.
func (o *Object) SymbolsByBind(bind SymbolBind) []Symbol {
	var out []Symbol
	for _, sym := range o.Symbols {
		if sym.Bind == bind {
			out = append(out, sym)
		}
	}
	return out
}

// Functions returns the symbols of type func, in table order.
func (o *Object) Functions() []Symbol {
	var out []Symbol
	for _, sym := range o.Symbols {
		if sym.Type == SymFunc {
			out = append(out, sym)
		}
	}
	return out
}
