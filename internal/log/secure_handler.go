package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// sensitiveKeys contains attribute keys whose values always hold a phone
// number and must be masked.
var sensitiveKeys = map[string]bool{
	"phone":        true,
	"phone_number": true,
	"phonenumber":  true,
	"number":       true,
	"msisdn":       true,
	"e164":         true,
	"input":        true,
	"raw_input":    true,
	"national":     true,
	"subscriber":   true,
}

// numberPattern matches values that look like dialable phone numbers:
// an optional leading plus, then at least seven digits possibly broken up
// by spaces, dots, dashes, or parentheses. Values matching this pattern
// are masked regardless of key name.
var numberPattern = regexp.MustCompile(`^\+?[0-9][0-9 ().\-]{5,}[0-9]$`)

// SecureHandler wraps an slog.Handler to mask phone numbers in log output.
// It intercepts log records and masks attribute values that name or look
// like phone numbers before passing them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
type SecureHandler struct {
	// handler is the underlying slog handler that receives masked records.
	handler slog.Handler
}

// NewSecureHandler creates a new SecureHandler wrapping the given handler.
// All log attributes will be masked before being passed to the underlying handler.
// If handler is nil, the returned SecureHandler will use slog.Default().Handler().
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the underlying handler.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	// Create a new record with masked attributes
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})

	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are masked before being added.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute, recursively handling groups.
func (h *SecureHandler) maskAttr(a slog.Attr) slog.Attr {
	// Handle groups recursively
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}
	strVal := a.Value.String()

	// Mask when the key names a phone number, or when the value looks
	// like a dialable number regardless of key name.
	keyLower := strings.ToLower(a.Key)
	if sensitiveKeys[keyLower] || containsSensitiveKeyword(keyLower) || numberPattern.MatchString(strVal) {
		return slog.String(a.Key, MaskNumber(strVal))
	}

	return a
}

// containsSensitiveKeyword checks if the key contains number-naming keywords.
// Note: We intentionally exclude the bare "code" keyword as it causes false
// positives (e.g., "region_code", "status_code"). Key names that hold a full
// number are covered by the sensitiveKeys map.
func containsSensitiveKeyword(key string) bool {
	sensitiveKeywords := []string{"phone", "msisdn", "e164"}

	for _, keyword := range sensitiveKeywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

// MaskNumber masks the subscriber portion of a phone-number-like value,
// keeping the leading plus, the first two digits, and the last two digits.
// Values too short to be a number, or that do not look like one, are
// returned unchanged.
//
// Example: "+442079460958" becomes "+44********58".
func MaskNumber(value string) string {
	if !numberPattern.MatchString(value) {
		return value
	}

	// Work on digits only so formatting characters don't leak length hints
	var prefix string
	digits := make([]rune, 0, len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if value[0] == '+' {
		prefix = "+"
	}

	if len(digits) <= 4 {
		return prefix + strings.Repeat("*", len(digits))
	}

	keep := 2
	head := digits[:keep]
	tail := digits[len(digits)-2:]
	return prefix + string(head) + strings.Repeat("*", len(digits)-keep-2) + string(tail)
}

// NewSecureLogger creates a new slog.Logger with phone number masking.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	secureHandler := NewSecureHandler(textHandler)

	return slog.New(secureHandler)
}

// NewSecureJSONLogger creates a new slog.Logger with phone number masking
// that outputs JSON format. Useful for structured log aggregation.
//
// Parameters:
//   - w: The io.Writer to write log output to
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger configured for JSON output with masking.
func NewSecureJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	secureHandler := NewSecureHandler(jsonHandler)

	return slog.New(secureHandler)
}
