// 指示: miu200521358
// Package logging はロガー契約と既定ロガーの登録を提供する。
package logging

import "sync"

// Level はログレベルを表す。
type Level int

const (
	// LOG_LEVEL_DEBUG はデバッグレベルを表す。
	LOG_LEVEL_DEBUG Level = iota
	// LOG_LEVEL_INFO は情報レベルを表す。
	LOG_LEVEL_INFO
	// LOG_LEVEL_WARN は警告レベルを表す。
	LOG_LEVEL_WARN
	// LOG_LEVEL_ERROR はエラーレベルを表す。
	LOG_LEVEL_ERROR
)

// VerboseIndex は詳細ログの出力先区分を表す。
type VerboseIndex int

const (
	// VERBOSE_INDEX_EXPORT はエクスポート処理の詳細ログ区分を表す。
	VERBOSE_INDEX_EXPORT VerboseIndex = iota
	// VERBOSE_INDEX_PHYSICS は物理プロキシ処理の詳細ログ区分を表す。
	VERBOSE_INDEX_PHYSICS
)

// ILogger はロガー契約を表す。
type ILogger interface {
	// Debug はデバッグログを出力する。
	Debug(format string, params ...any)
	// Info は情報ログを出力する。
	Info(format string, params ...any)
	// Warn は警告ログを出力する。
	Warn(format string, params ...any)
	// Error はエラーログを出力する。
	Error(format string, params ...any)
	// Verbose は詳細ログを出力する。
	Verbose(index VerboseIndex, format string, params ...any)
	// IsVerboseEnabled は詳細ログ区分の有効状態を返す。
	IsVerboseEnabled(index VerboseIndex) bool
	// SetLevel は出力レベルを設定する。
	SetLevel(level Level)
}

var (
	defaultLoggerMu sync.RWMutex
	defaultLogger   ILogger
)

// DefaultLogger は既定ロガーを返す。未設定の場合はnilを返す。
func DefaultLogger() ILogger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger は既定ロガーを設定する。
func SetDefaultLogger(logger ILogger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = logger
}
