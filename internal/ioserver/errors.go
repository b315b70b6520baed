package ioserver

import (
	"fmt"
	"runtime"

	"github.com/chuawjk/ecda/pkg/errcode"
	"github.com/gnames/gn"
)

func StartError(port int, err error) error {
	msg := "Cannot serve runs API on port <em>%d</em>"
	vars := []any{port}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ServerStartError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot serve runs API on port %d: %w",
			fn, port, err),
	}
}
