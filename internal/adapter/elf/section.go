// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package elf

import (
	"encoding/binary"
	"fmt"

	"elfscan/internal/domain/model"
)

// decodeSections reads the section header table and resolves every section
// name through the table the header's shstrndx points at. The name table is
// sliced once and reused for all lookups.
func decodeSections(data []byte, order binary.ByteOrder, hdr model.Header) ([]model.Section, error) {
	if hdr.Shnum == 0 {
		return nil, nil
	}
	if hdr.Shentsize < shdrSize {
		return nil, fmt.Errorf("%w: section entry size %d, want at least %d",
			ErrBadFormat, hdr.Shentsize, shdrSize)
	}

	num := uint64(hdr.Shnum)
	entsize := uint64(hdr.Shentsize)
	end := hdr.Shoff + num*entsize
	if end < hdr.Shoff || end > uint64(len(data)) {
		return nil, fmt.Errorf("%w: section table spans [%d, %d) beyond %d bytes",
			ErrTruncated, hdr.Shoff, end, len(data))
	}

	sections := make([]model.Section, 0, hdr.Shnum)
	for i := uint64(0); i < num; i++ {
		cur := newCursor(data, int(hdr.Shoff+i*entsize), order)
		s := model.Section{
			NameIndex: cur.u32(),
			Type:      model.SectionType(cur.u32()),
			Flags:     cur.u64(),
			Addr:      cur.u64(),
			Offset:    cur.u64(),
			Size:      cur.u64(),
			Link:      cur.u32(),
			Info:      cur.u32(),
			Addralign: cur.u64(),
			Entsize:   cur.u64(),
		}
		if cur.err != nil {
			return nil, fmt.Errorf("section %d: %w", i, cur.err)
		}
		sections = append(sections, s)
	}

	if err := resolveSectionNames(data, hdr, sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func resolveSectionNames(data []byte, hdr model.Header, sections []model.Section) error {
	if hdr.Shstrndx == model.ShnUndef {
		return nil
	}
	if int(hdr.Shstrndx) >= len(sections) {
		return fmt.Errorf("%w: section name table index %d with %d sections",
			ErrBadFormat, hdr.Shstrndx, len(sections))
	}
	shstrtab := sections[hdr.Shstrndx]
	if shstrtab.Type != model.SectionStrtab {
		return fmt.Errorf("%w: section name table has type %s", ErrBadFormat, shstrtab.Type)
	}
	tab, err := sectionData(data, shstrtab)
	if err != nil {
		return err
	}

	for i := range sections {
		name, err := readString(tab, sections[i].NameIndex)
		if err != nil {
			return fmt.Errorf("section %d name: %w", i, err)
		}
		sections[i].Name = name
	}
	return nil
}
