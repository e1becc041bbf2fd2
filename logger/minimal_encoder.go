package logger

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// Gruvbox Dark palette (warm, muted, easy on eyes)
const (
	colorFg       = "\x1b[38;5;223m" // Soft cream (#ebdbb2)
	colorAqua     = "\x1b[38;5;108m" // Muted cyan-green (#8ec07c)
	colorOrange   = "\x1b[38;5;208m" // Warm orange (#fe8019)
	colorYellow   = "\x1b[38;5;214m" // Soft yellow (#fabd2f)
	colorBlue     = "\x1b[38;5;109m" // Soft blue (#83a598)
	colorPurple   = "\x1b[38;5;175m" // Muted purple (#d3869b)
	colorRed      = "\x1b[38;5;167m" // Warm red (#fb4934)
	colorRedBg    = "\x1b[48;5;88m"
	colorYellowBg = "\x1b[48;5;58m"
)

var bufferPool = buffer.NewPool()

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  generate  Wrote module  user (2 classes) 3ms  path=src/generated/user.ts"
type minimalEncoder struct {
	zapcore.Encoder // Embedded for With() field accumulation
	context         []zapcore.Field
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		context: append([]zapcore.Field(nil), enc.context...),
	}
}

// AddString and friends are reached through Logger.With; keep the fields so
// they show up on every entry of the child logger.
func (enc *minimalEncoder) AddString(key, value string) {
	enc.context = append(enc.context, zap.String(key, value))
}

func (enc *minimalEncoder) AddInt64(key string, value int64) {
	enc.context = append(enc.context, zap.Int64(key, value))
}

func (enc *minimalEncoder) AddBool(key string, value bool) {
	enc.context = append(enc.context, zap.Bool(key, value))
}

func (enc *minimalEncoder) AddFloat64(key string, value float64) {
	enc.context = append(enc.context, zap.Float64(key, value))
}

func (enc *minimalEncoder) AddReflected(key string, value interface{}) error {
	enc.context = append(enc.context, zap.Reflect(key, value))
	return nil
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	final.AppendString(colorAqua)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only show for non-info with bold + background
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorComponent(ent.LoggerName))
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(colorFg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	all := append(append([]zapcore.Field(nil), enc.context...), fields...)
	if len(all) > 0 {
		final.AppendString("  ")
		final.AppendString(extractFieldValues(all))
	}

	final.AppendString("\n")
	return final, nil
}

// colorComponent hashes the name so each component keeps one color
func colorComponent(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	if hash%2 == 0 {
		return colorOrange
	}
	return colorYellow
}

// levelColorString returns bold + colored + background for non-info levels
func levelColorString(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return colorBlue + "DEBUG" + colorReset
	case zapcore.WarnLevel:
		return colorBold + colorYellowBg + colorYellow + "WARN" + colorReset
	default:
		return colorBold + colorRedBg + colorRed + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens component names: generate.render -> g.render
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// getFieldValue renders the value of a zap field
func getFieldValue(field zapcore.Field) string {
	switch field.Type {
	case zapcore.StringType:
		return field.String
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		return fmt.Sprintf("%d", field.Integer)
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", uint64(field.Integer))
	case zapcore.BoolType:
		return fmt.Sprintf("%t", field.Integer == 1)
	case zapcore.Float64Type:
		return fmt.Sprintf("%g", math.Float64frombits(uint64(field.Integer)))
	case zapcore.DurationType:
		return time.Duration(field.Integer).String()
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok {
			return err.Error()
		}
	}

	if field.Interface != nil {
		return fmt.Sprintf("%v", field.Interface)
	}
	return field.String
}

// extractFieldValues renders structured fields. Well-known generator fields
// get a compact form; every other field is kept as key=value.
//
// Input:  {"module": "user", "count": 2, "duration_ms": 3, "path": "a.ts"}
// Output: "user (2 classes) 3ms  path=a.ts"
func extractFieldValues(fields []zapcore.Field) string {
	var head []string
	var rest []string
	var count string

	for _, field := range fields {
		val := getFieldValue(field)
		switch field.Key {
		case FieldModule, FieldClass:
			head = append(head, colorBlue+val+colorReset)
		case FieldCount:
			count = val
		case FieldDurationMS:
			head = append(head, colorPurple+val+colorReset+"ms")
		case FieldError:
			rest = append(rest, colorRed+field.Key+"="+val+colorReset)
		default:
			rest = append(rest, field.Key+"="+val)
		}
	}

	if count != "" {
		noun := "classes"
		if count == "1" {
			noun = "class"
		}
		head = append(head, colorFg+"("+colorPurple+count+colorReset+colorFg+" "+noun+")"+colorReset)
	}

	sort.Strings(rest)
	parts := strings.Join(head, " ")
	if len(rest) > 0 {
		if parts != "" {
			parts += "  "
		}
		parts += strings.Join(rest, " ")
	}
	return parts
}
