package iofertility

import (
	"fmt"
	"runtime"

	"github.com/chuawjk/ecda/pkg/errcode"
	"github.com/gnames/gn"
)

func FileError(path string, err error) error {
	msg := "Cannot read fertility data from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FertilityFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read fertility data: %w",
			fn, err),
	}
}

func HeaderError(path string) error {
	msg := "No year columns found in <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FertilityHeaderError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: no year columns in %s",
			fn, path),
	}
}
