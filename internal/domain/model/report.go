// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package model

import "time"

// ScanTotals aggregates counts across every object in a scan.
type ScanTotals struct {
	Objects       int            `json:"objects"`
	Sections      int            `json:"sections"`
	Symbols       int            `json:"symbols"`
	Functions     int            `json:"functions"`
	LocalSymbols  int            `json:"localSymbols"`
	GlobalSymbols int            `json:"globalSymbols"`
	WeakSymbols   int            `json:"weakSymbols"`
	ByFileType    map[string]int `json:"byFileType,omitempty"`
}

// ScanReport is the persisted result of one inspect run.
type ScanReport struct {
	RootPath    string        `json:"rootPath"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Objects     []Object      `json:"objects"`
	Totals      ScanTotals    `json:"totals"`
	TypeCatalog []TypeSummary `json:"typeCatalog"`
	Warnings    []string      `json:"warnings,omitempty"`
}

// TypeSummary describes one constant the decoder understands. The catalog
// backs the "types" subcommand and is embedded into every report so a saved
// report stays self-describing.
type TypeSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group"`
}

func AllTypeSummaries() []TypeSummary {
	return []TypeSummary{
		{
			ID:          "filetype.rel",
			Name:        "Relocatable file",
			Description: "Compiler/assembler output meant for the linker (e_type=1).",
			Group:       "file type",
		},
		{
			ID:          "filetype.exec",
			Name:        "Executable file",
			Description: "Fully linked program with a fixed entry point (e_type=2).",
			Group:       "file type",
		},
		{
			ID:          "filetype.dyn",
			Name:        "Shared object file",
			Description: "Position-independent library or PIE executable (e_type=3).",
			Group:       "file type",
		},
		{
			ID:          "filetype.core",
			Name:        "Core file",
			Description: "Process image dumped by the kernel (e_type=4).",
			Group:       "file type",
		},
		{
			ID:          "machine.i386",
			Name:        "Intel 80386",
			Description: "32-bit x86 (e_machine=3).",
			Group:       "machine",
		},
		{
			ID:          "machine.arm",
			Name:        "ARM",
			Description: "32-bit ARM (e_machine=40).",
			Group:       "machine",
		},
		{
			ID:          "machine.x86_64",
			Name:        "AMD x86-64",
			Description: "64-bit x86 (e_machine=62).",
			Group:       "machine",
		},
		{
			ID:          "machine.aarch64",
			Name:        "AArch64",
			Description: "64-bit ARM (e_machine=183).",
			Group:       "machine",
		},
		{
			ID:          "machine.riscv",
			Name:        "RISC-V",
			Description: "RISC-V (e_machine=243).",
			Group:       "machine",
		},
		{
			ID:          "section.progbits",
			Name:        "Progbits",
			Description: "Program-defined contents such as code or initialized data.",
			Group:       "section type",
		},
		{
			ID:          "section.symtab",
			Name:        "Symbol table",
			Description: "Full symbol table; entries are decoded into the report.",
			Group:       "section type",
		},
		{
			ID:          "section.strtab",
			Name:        "String table",
			Description: "NUL-terminated strings backing section and symbol names.",
			Group:       "section type",
		},
		{
			ID:          "section.rela",
			Name:        "Relocations (addend)",
			Description: "Relocation entries with explicit addends; typed but not decoded.",
			Group:       "section type",
		},
		{
			ID:          "section.rel",
			Name:        "Relocations",
			Description: "Relocation entries without addends; typed but not decoded.",
			Group:       "section type",
		},
		{
			ID:          "section.dynamic",
			Name:        "Dynamic",
			Description: "Dynamic linking information.",
			Group:       "section type",
		},
		{
			ID:          "section.note",
			Name:        "Note",
			Description: "Vendor notes such as build IDs.",
			Group:       "section type",
		},
		{
			ID:          "section.nobits",
			Name:        "Nobits",
			Description: "Zero-initialized data occupying no file space (.bss).",
			Group:       "section type",
		},
		{
			ID:          "section.dynsym",
			Name:        "Dynamic symbol table",
			Description: "Exported/imported symbols; entries are decoded into the report.",
			Group:       "section type",
		},
		{
			ID:          "sym.bind.local",
			Name:        "Local binding",
			Description: "Symbol visible only inside its object file.",
			Group:       "symbol binding",
		},
		{
			ID:          "sym.bind.global",
			Name:        "Global binding",
			Description: "Symbol visible to every object being linked.",
			Group:       "symbol binding",
		},
		{
			ID:          "sym.bind.weak",
			Name:        "Weak binding",
			Description: "Global symbol that a non-weak definition may override.",
			Group:       "symbol binding",
		},
		{
			ID:          "sym.type.object",
			Name:        "Data object",
			Description: "Symbol names a variable or other data.",
			Group:       "symbol type",
		},
		{
			ID:          "sym.type.func",
			Name:        "Function",
			Description: "Symbol names executable code.",
			Group:       "symbol type",
		},
		{
			ID:          "sym.type.section",
			Name:        "Section",
			Description: "Symbol names a section, mostly for relocations.",
			Group:       "symbol type",
		},
		{
			ID:          "sym.type.file",
			Name:        "File",
			Description: "Symbol carries the source file name of the object.",
			Group:       "symbol type",
		},
	}
}
