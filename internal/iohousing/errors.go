package iohousing

import (
	"fmt"
	"runtime"

	"github.com/chuawjk/ecda/pkg/errcode"
	"github.com/gnames/gn"
)

func FileError(path string, err error) error {
	msg := "Cannot read BTO data from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HousingFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read BTO data: %w",
			fn, err),
	}
}

func ColumnError(path, column string) error {
	msg := "Column <em>%s</em> not found in %s"
	vars := []any{column, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HousingColumnError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: column %q not found in %s",
			fn, column, path),
	}
}
