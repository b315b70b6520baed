package iopreschools

import (
	"fmt"
	"runtime"

	"github.com/chuawjk/ecda/pkg/errcode"
	"github.com/gnames/gn"
)

func SubzonesFileError(path string, err error) error {
	msg := "Cannot read subzone boundaries from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SubzonesFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read subzone boundaries: %w",
			fn, err),
	}
}

func SubzonesGeoJSONError(path string, err error) error {
	msg := "Cannot parse subzone boundaries in <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SubzonesGeoJSONError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot parse subzone boundaries: %w",
			fn, err),
	}
}

func CentresFileError(path string, err error) error {
	msg := "Cannot read centre listing from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CentresFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read centre listing: %w",
			fn, err),
	}
}

func CentresColumnError(path, column string) error {
	msg := "Column <em>%s</em> not found in %s"
	vars := []any{column, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CentresColumnError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: column %q not found in %s",
			fn, column, path),
	}
}

func CentresWriteError(path string, err error) error {
	msg := "Cannot write geocoded centre listing to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write geocoded centre listing: %w",
			fn, err),
	}
}

func TokenError() error {
	msg := "OneMap token is not set, provide it via the " +
		"<em>ECDA_GEOCODER_TOKEN</em> environment variable"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GeocodeTokenError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: OneMap token is empty", fn),
	}
}

func RequestError(postal string, err error) error {
	msg := "OneMap lookup failed for postal code <em>%s</em>"
	vars := []any{postal}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GeocodeRequestError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: OneMap lookup failed for %s: %w",
			fn, postal, err),
	}
}

func ResponseError(postal string, err error) error {
	msg := "Cannot parse OneMap response for postal code <em>%s</em>"
	vars := []any{postal}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GeocodeResponseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot parse OneMap response for %s: %w",
			fn, postal, err),
	}
}
