package types

import "errors"

// Registration and lookup errors.
var (
	ErrNeedToRegister             = errors.New("you need to register before inserting components")
	ErrComponentAlreadyRegistered = errors.New("component already registered")
	ErrComponentNotFound          = errors.New("component not found")
	ErrResourceNotFound           = errors.New("resource not found")
	ErrBitMapInsertBeforeRegister = errors.New("tried to insert into the bitmap before registering")
	ErrReservedComponent          = errors.New("component is reserved")
)

// Access errors.
var (
	ErrCastingComponents  = errors.New("cannot cast component")
	ErrCastingResource    = errors.New("cannot cast resource")
	ErrOutOfRangeInVector = errors.New("index is greater than the length of the vector")
	ErrUnknownKind        = errors.New("unknown value kind")
)
