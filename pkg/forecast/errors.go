package forecast

import (
	"fmt"
	"runtime"

	"github.com/chuawjk/ecda/pkg/errcode"
	"github.com/gnames/gn"
)

func ParamsError(format string, vars ...any) error {
	msg := "Invalid forecast settings: " + format
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ForecastParamsError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: invalid forecast settings: %s",
			fn, fmt.Sprintf(format, vars...)),
	}
}
