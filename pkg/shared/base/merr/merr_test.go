// 指示: miu200521358
package merr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewAndID(t *testing.T) {
	err := New("ValidationError", "入力が不正です")
	if ExtractErrorID(err) != "ValidationError" {
		t.Fatalf("id mismatch: %s", ExtractErrorID(err))
	}
	if !HasID(err, "ValidationError") {
		t.Fatalf("HasID mismatch")
	}
	if HasID(err, "Other") {
		t.Fatalf("HasID must reject other ids")
	}
	if !strings.Contains(err.Error(), "ValidationError") {
		t.Fatalf("message must carry id: %s", err.Error())
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("底のエラー")
	err := Wrap("ScaleTooSmall", "倍率が不正です", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("cause must be reachable via errors.Is")
	}
	if !HasID(err, "ScaleTooSmall") {
		t.Fatalf("id lost through wrap")
	}
}

func TestHasIDThroughFmtWrap(t *testing.T) {
	inner := Newf("PartitionVertexOutOfRange", "頂点%dが範囲外です", 10)
	outer := fmt.Errorf("リマップに失敗しました: %w", inner)
	if !HasID(outer, "PartitionVertexOutOfRange") {
		t.Fatalf("id must survive fmt wrapping")
	}
}

func TestExtractErrorIDPlainError(t *testing.T) {
	if ExtractErrorID(errors.New("plain")) != "" {
		t.Fatalf("plain error must yield empty id")
	}
	if ExtractErrorID(nil) != "" {
		t.Fatalf("nil error must yield empty id")
	}
}
