package shared

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidModulus = errors.New("invalid modulus")
	ErrInvalidElement = errors.New("invalid group element")
	ErrProofNotExist  = errors.New("proof doesn't exist")
)

type ConfigMismatchError struct {
	Param    string
	Expected string
	Found    string
	Path     string
}

func (err ConfigMismatchError) Error() string {
	return fmt.Sprintf("`%v` config mismatch; expected: %v, found: %v, path: %v",
		err.Param, err.Expected, err.Found, err.Path)
}
