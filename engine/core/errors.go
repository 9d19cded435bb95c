package core

import (
	"errors"
)

var (
	ErrConfigNotFound        = errors.New("config file not found")
	ErrBackendNotInitialized = errors.New("renderer backend not initialized")
	ErrShaderCompile         = errors.New("shader failed to compile")
	ErrShaderLink            = errors.New("shader program failed to link")
	ErrGeometryUpload        = errors.New("geometry upload failed")
	ErrUnknown               = errors.New("unknown")
)
