package settings

import "errors"

var (
	// ErrInvalidSettings marks a document that fails the top-level check.
	ErrInvalidSettings = errors.New("invalid settings")
	// ErrInvalidThemeMode is returned when a theme mode is blank.
	ErrInvalidThemeMode = errors.New("invalid theme mode")
	// ErrInvalidTheme is returned when a supplied custom theme is incomplete.
	ErrInvalidTheme = errors.New("invalid custom theme")
	// ErrInvalidImage is returned when a custom background image is incomplete.
	ErrInvalidImage = errors.New("invalid background image")
	// ErrImageNotFound is returned when no catalog image matches a source.
	ErrImageNotFound = errors.New("background image not found")
	// ErrCatalogNotReady is returned while the image catalog is still loading.
	ErrCatalogNotReady = errors.New("image catalog not loaded")
	// ErrEngineNotFound is returned for unknown custom search engine keys.
	ErrEngineNotFound = errors.New("custom search engine not found")
	// ErrInvalidValue wraps any other rejected setter argument.
	ErrInvalidValue = errors.New("invalid settings value")
)
