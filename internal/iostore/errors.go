package iostore

import (
	"fmt"
	"runtime"

	"github.com/chuawjk/ecda/pkg/errcode"
	"github.com/gnames/gn"
)

func OpenError(path string, err error) error {
	msg := "Cannot open run store <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open run store: %w",
			fn, err),
	}
}

func NotInitializedError() error {
	msg := "Run store is not initialized"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: run store is not initialized", fn),
	}
}

func SchemaError(err error) error {
	msg := "Cannot create run store schema"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreSchemaError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: cannot create run store schema: %w",
			fn, err),
	}
}

func SaveError(err error) error {
	msg := "Cannot save forecast run"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreSaveError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: cannot save forecast run: %w",
			fn, err),
	}
}

func QueryError(err error) error {
	msg := "Cannot read forecast runs"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: cannot read forecast runs: %w",
			fn, err),
	}
}

func NotFoundError(id string) error {
	msg := "No forecast run with ID <em>%s</em>"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no forecast run with ID %s", fn, id),
	}
}
