// 指示: miu200521358
// Package mlogging はlogging契約の標準実装を提供する。
package mlogging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/miu200521358/mu_skin2nif/pkg/shared/base/logging"
)

// Logger はlogging.ILoggerの標準実装を表す。
type Logger struct {
	mu      sync.Mutex
	out     *log.Logger
	level   logging.Level
	verbose map[logging.VerboseIndex]bool
}

// NewLogger はロガーを生成する。wがnilの場合は標準エラー出力を使う。
func NewLogger(w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{
		out:     log.New(w, "", log.LstdFlags),
		level:   logging.LOG_LEVEL_INFO,
		verbose: map[logging.VerboseIndex]bool{},
	}
}

// SetLevel は出力レベルを設定する。
func (l *Logger) SetLevel(level logging.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// EnableVerbose は詳細ログ区分を有効化する。
func (l *Logger) EnableVerbose(index logging.VerboseIndex) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose[index] = true
}

// IsVerboseEnabled は詳細ログ区分の有効状態を返す。
func (l *Logger) IsVerboseEnabled(index logging.VerboseIndex) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.verbose[index]
}

// Debug はデバッグログを出力する。
func (l *Logger) Debug(format string, params ...any) {
	l.write(logging.LOG_LEVEL_DEBUG, "DEBUG", format, params...)
}

// Info は情報ログを出力する。
func (l *Logger) Info(format string, params ...any) {
	l.write(logging.LOG_LEVEL_INFO, "INFO", format, params...)
}

// Warn は警告ログを出力する。
func (l *Logger) Warn(format string, params ...any) {
	l.write(logging.LOG_LEVEL_WARN, "WARN", format, params...)
}

// Error はエラーログを出力する。
func (l *Logger) Error(format string, params ...any) {
	l.write(logging.LOG_LEVEL_ERROR, "ERROR", format, params...)
}

// Verbose は詳細ログを出力する。
func (l *Logger) Verbose(index logging.VerboseIndex, format string, params ...any) {
	if !l.IsVerboseEnabled(index) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf("[VERBOSE:%d] %s", index, fmt.Sprintf(format, params...))
}

// write はレベル判定付きでログを出力する。
func (l *Logger) write(level logging.Level, tag string, format string, params ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}
	l.out.Printf("[%s] %s", tag, fmt.Sprintf(format, params...))
}
