// 指示: miu200521358
// Package merr はエラーID付きエラーを提供する。
package merr

import (
	"errors"
	"fmt"
)

// Error はエラーIDを持つエラーを表す。
type Error struct {
	id      string
	message string
	cause   error
}

// New はエラーID付きエラーを生成する。
func New(id string, message string) error {
	return &Error{id: id, message: message}
}

// Newf は書式指定でエラーID付きエラーを生成する。
func Newf(id string, format string, params ...any) error {
	return &Error{id: id, message: fmt.Sprintf(format, params...)}
}

// Wrap は原因エラーを保持したエラーID付きエラーを生成する。
func Wrap(id string, message string, cause error) error {
	return &Error{id: id, message: message, cause: cause}
}

// Error はエラーメッセージを返す。
func (e *Error) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("[%s] %s", e.id, e.message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.id, e.message, e.cause)
}

// Unwrap は原因エラーを返す。
func (e *Error) Unwrap() error {
	return e.cause
}

// ID はエラーIDを返す。
func (e *Error) ID() string {
	return e.id
}

// ExtractErrorID はエラー連鎖から最初のエラーIDを取り出す。該当がなければ空文字を返す。
func ExtractErrorID(err error) string {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.id
	}
	return ""
}

// HasID はエラー連鎖に指定IDが含まれるかを判定する。
func HasID(err error, id string) bool {
	return ExtractErrorID(err) == id
}
