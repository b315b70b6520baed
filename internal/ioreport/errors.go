package ioreport

import (
	"fmt"
	"runtime"

	"github.com/chuawjk/ecda/pkg/errcode"
	"github.com/gnames/gn"
)

func WriteError(path string, err error) error {
	msg := "Cannot write report file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReportWriteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write report file: %w",
			fn, err),
	}
}
