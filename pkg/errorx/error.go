package errorx

import (
	"errors"
	"net/http"
)

// BizError carries a status-like code alongside the message so callers can
// map it onto whatever surface they expose.
type BizError struct {
	Code int
	Msg  string
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

// CodeOf returns the code of the first BizError in err's chain, 500 otherwise.
func CodeOf(err error) int {
	var be *BizError
	if errors.As(err, &be) {
		return be.Code
	}
	return http.StatusInternalServerError
}

// IsValidation reports whether err is a caller mistake rather than a
// persistence failure.
func IsValidation(err error) bool {
	code := CodeOf(err)
	return code >= 400 && code < 500
}
