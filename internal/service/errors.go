package service

import (
	"errors"
	"fmt"
)

// Error kinds returned by AccountService. Callers match them with errors.Is.
var (
	ErrDuplicateValue = errors.New("duplicate value")
	ErrTimeSet        = errors.New("time set error")
	ErrPassword       = errors.New("password error")
	ErrAccount        = errors.New("account not found")
	ErrFormat         = errors.New("format error")
	ErrInvalidInput   = errors.New("invalid input")
)

// OpError is a typed operation error. Kind is always one of the sentinel kinds above;
// Msg carries context and never a secret.
type OpError struct {
	Op   string
	Kind error
	Msg  string
}

func (e OpError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

func (e OpError) Unwrap() error { return e.Kind }

func opError(op string, kind error, format string, args ...any) error {
	return OpError{Op: op, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsDuplicateValue reports whether err represents ErrDuplicateValue.
func IsDuplicateValue(err error) bool { return errors.Is(err, ErrDuplicateValue) }

// IsTimeSet reports whether err represents ErrTimeSet.
func IsTimeSet(err error) bool { return errors.Is(err, ErrTimeSet) }

// IsPassword reports whether err represents ErrPassword.
func IsPassword(err error) bool { return errors.Is(err, ErrPassword) }

// IsAccount reports whether err represents ErrAccount.
func IsAccount(err error) bool { return errors.Is(err, ErrAccount) }

// IsFormat reports whether err represents ErrFormat.
func IsFormat(err error) bool { return errors.Is(err, ErrFormat) }

// IsInvalidInput reports whether err represents ErrInvalidInput.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }
