//go:build tools

package tools

// Developer tools used by this module:
// - github.com/matryer/moq regenerates the *_mock_test.go files in internal/service/book
//   (see the go:generate directives in service_test.go).
// - github.com/pressly/goose/v3/cmd/goose is declared as a go.mod tool for ad-hoc
//   migration work; cmd/migrate covers the usual up/down/status flow.
