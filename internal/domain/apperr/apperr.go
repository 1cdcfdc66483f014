// Package apperr はドメイン層が返すエラーの閉じた分類。
// 文字列マッチではなくKindでハンドラ層がHTTPステータスへ変換する。
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// 400 入力不正
	Validation Kind = iota
	// 401 メール/パスワード不一致（どちらが違うかは返さない）
	InvalidCredentials
	// 401 トークン欠落・署名不正・期限切れ
	Unauthorized
	// 403 認証済みだが権限なし
	Forbidden
	// 404 対象が存在しない（非公開も含む）
	NotFound
	// 409 ユニーク制約違反（email重複）
	Conflict
	// 400 カート追加・変更時の在庫超過
	OutOfStock
	// 400 注文確定時の在庫不足
	InsufficientStock
	// 400 空のカートで注文
	EmptyCart
	// 404 注文確定時に商品が消えていた
	ProductsUnavailable
	// 500 予期しない失敗
	Internal
)

type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap は原因を保持したままKindを付ける。原因はログにだけ出す。
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf は未知のエラーをInternal扱いにする。
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// MessageOf はクライアントに見せてよいメッセージを返す。
// 未知のエラーの内部事情は漏らさない。
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal error"
}

func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
