package app

import (
	"io"

	"github.com/vk/nodeshop/internal/registry"
	"github.com/vk/nodeshop/modules/arith"
	"github.com/vk/nodeshop/modules/print"
	"github.com/vk/nodeshop/modules/source"
)

// coreModules returns the built-in function set every graph document can
// reference: the arithmetic operators, the printing sink, and the two
// reference sources the sample documents use.
func coreModules(outW io.Writer) []registry.Module {
	return []registry.Module{
		&arith.Module{},
		&print.Module{Out: outW},
		source.Constant("val0", 2),
		source.Constant("val1", 5),
	}
}
