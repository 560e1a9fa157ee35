package nutriguide

import (
	"github.com/davecgh/go-spew/spew"
)

var dumper = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}

// Sdump renders v for debugging turns.
func Sdump(v ...any) string {
	return dumper.Sdump(v...)
}
