package utils

import (
	"context"
	"fmt"
	"math"
	"runtime/debug"

	"golang-stock-sentiment/pkg/logger"
)

// panicLogger receives recovered panics from GoSafe. It is nil until SetPanicLogger is called.
var panicLogger *logger.Logger

// SetPanicLogger sets the logger used to report panics recovered by GoSafe.
func SetPanicLogger(l *logger.Logger) {
	panicLogger = l
}

// GoSafe runs fn in a goroutine and recovers from any panic it raises.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if panicLogger != nil {
					panicLogger.Error("Recovered from panic",
						logger.StringField("panic", fmt.Sprint(r)),
						logger.StringField("stack", string(debug.Stack())))
				}
			}
		}()
		fn()
	}()
}

// ShouldContinue reports whether ctx is still live, logging when it is not.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		log.Warn("Context done, stopping", logger.ErrorField(ctx.Err()))
		return false
	default:
		return true
	}
}

// TruncateRunes returns s cut to at most n characters. It never splits a multi-byte rune.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
