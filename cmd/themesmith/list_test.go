package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/themesmith/internal/theme"
	"github.com/jmylchreest/themesmith/internal/toolchain"
)

func TestWriteList(t *testing.T) {
	var buf bytes.Buffer
	writeList(&buf, []toolchain.Entry{
		{Name: "dark-ocean", Variant: theme.VariantDark, HasEntry: true, Compiled: true, Bytes: 1500, Selected: true},
		{Name: "empty", Variant: theme.VariantUnknown},
		{Name: "light-ocean", Variant: theme.VariantLight, HasEntry: true},
	})

	want := "Light themes\n" +
		"    light-ocean  not compiled\n" +
		"\n" +
		"Dark themes\n" +
		"  * dark-ocean  compiled 1.5 kB\n" +
		"\n" +
		"Other\n" +
		"    empty  not compiled, no entry file\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}
