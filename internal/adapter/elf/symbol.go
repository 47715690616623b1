// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package elf

import (
	"encoding/binary"
	"fmt"

	"elfscan/internal/domain/model"
)

// decodeSymbols walks every symtab/dynsym section and decodes its entries.
// Names resolve through the string table named by the owning section's Link
// field; scanning for "the first strtab" would pick the wrong table in
// objects that carry both .strtab and .shstrtab.
func decodeSymbols(data []byte, order binary.ByteOrder, sections []model.Section) ([]model.Symbol, error) {
	var symbols []model.Symbol

	for i, sec := range sections {
		if sec.Type != model.SectionSymtab && sec.Type != model.SectionDynsym {
			continue
		}
		if sec.Entsize < symSize {
			return nil, fmt.Errorf("%w: section %q symbol entry size %d, want at least %d",
				ErrBadFormat, sec.Name, sec.Entsize, symSize)
		}
		if int(sec.Link) >= len(sections) {
			return nil, fmt.Errorf("%w: section %q links to string table %d with %d sections",
				ErrBadFormat, sec.Name, sec.Link, len(sections))
		}
		strsec := sections[sec.Link]
		if strsec.Type != model.SectionStrtab {
			return nil, fmt.Errorf("%w: section %q links to %q of type %s, want strtab",
				ErrBadFormat, sec.Name, strsec.Name, strsec.Type)
		}

		tab, err := sectionData(data, strsec)
		if err != nil {
			return nil, err
		}
		if _, err := sectionData(data, sec); err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}

		count := sec.Size / sec.Entsize
		for j := uint64(0); j < count; j++ {
			sym, err := decodeSymbol(data, order, sec.Offset+j*sec.Entsize, tab)
			if err != nil {
				return nil, fmt.Errorf("section %q symbol %d: %w", sec.Name, j, err)
			}
			symbols = append(symbols, sym)
		}
	}

	return symbols, nil
}

func decodeSymbol(data []byte, order binary.ByteOrder, off uint64, strtab []byte) (model.Symbol, error) {
	var sym model.Symbol
	if off != uint64(int(off)) {
		return sym, ErrTruncated
	}

	cur := newCursor(data, int(off), order)
	nameIndex := cur.u32()
	info := cur.u8()
	other := cur.u8()
	sym = model.Symbol{
		NameIndex:  nameIndex,
		Bind:       model.SymbolBind(info >> 4),
		Type:       model.SymbolType(info & 0xf),
		Visibility: model.SymbolVisibility(other & 0x3),
		Shndx:      cur.u16(),
		Value:      cur.u64(),
		Size:       cur.u64(),
	}
	if cur.err != nil {
		return sym, cur.err
	}

	name, err := readString(strtab, nameIndex)
	if err != nil {
		return sym, fmt.Errorf("name: %w", err)
	}
	sym.Name = name
	return sym, nil
}
