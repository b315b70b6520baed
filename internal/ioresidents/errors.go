package ioresidents

import (
	"fmt"
	"runtime"

	"github.com/chuawjk/ecda/pkg/errcode"
	"github.com/gnames/gn"
)

func FileError(path string, err error) error {
	msg := "Cannot read residents data from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ResidentsFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read residents data: %w",
			fn, err),
	}
}

func SheetError(path, sheet string, err error) error {
	msg := "Worksheet <em>%s</em> not found in %s"
	vars := []any{sheet, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ResidentsSheetError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: worksheet %q not found: %w",
			fn, sheet, err),
	}
}

func ColumnError(path, column string) error {
	msg := "Column <em>%s</em> not found in %s"
	vars := []any{column, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ResidentsColumnError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: column %q not found in %s",
			fn, column, path),
	}
}
