// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnumsNameKnownValuesAndPassUnknownThrough(t *testing.T) {
	require.Equal(t, "ELF64", Class64.String())
	require.Equal(t, "class(7)", Class(7).String())

	require.Equal(t, "relocatable file", FileTypeRel.String())
	require.Equal(t, "type(9)", FileType(9).String())

	require.Equal(t, "x86-64", MachineX86_64.String())
	require.Equal(t, "machine(999)", Machine(999).String())

	require.Equal(t, "symtab", SectionSymtab.String())
	require.Equal(t, "section(100)", SectionType(100).String())

	require.Equal(t, "global", BindGlobal.String())
	require.Equal(t, "func", SymFunc.String())
	require.Equal(t, "hidden", VisHidden.String())
}

func TestSectionFlagString(t *testing.T) {
	s := Section{Flags: SectionFlagAlloc | SectionFlagExecinstr}
	require.Equal(t, "AX", s.FlagString())

	s.Flags = SectionFlagWrite | SectionFlagAlloc
	require.Equal(t, "WA", s.FlagString())

	s.Flags = 0
	require.Equal(t, "", s.FlagString())
}

func TestObjectLookups(t *testing.T) {
	obj := &Object{
		Sections: []Section{
			{Name: ".text", Type: SectionProgbits},
			{Name: ".data", Type: SectionProgbits},
		},
		Symbols: []Symbol{
			{Name: "local_f", Bind: BindLocal, Type: SymFunc},
			{Name: "global_f", Bind: BindGlobal, Type: SymFunc},
			{Name: "state", Bind: BindGlobal, Type: SymObject},
		},
	}

	sec, ok := obj.Section(".data")
	require.True(t, ok)
	require.Equal(t, ".data", sec.Name)

	_, ok = obj.Section(".bss")
	require.False(t, ok)

	funcs := obj.Functions()
	require.Len(t, funcs, 2)
	require.Equal(t, "local_f", funcs[0].Name)

	globals := obj.SymbolsByBind(BindGlobal)
	require.Len(t, globals, 2)
	require.Equal(t, "state", globals[1].Name)
}
