/*
Copyright 2025 The JQL Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package obslog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

var bufferPool = buffer.NewPool()

// logfmtEncoder renders log entries as ts=... lvl=... msg="..." key=value,
// a condensed version of libaf/logging's reflection-based flattening:
// this one only needs to flatten the map zapcore.MapObjectEncoder hands
// it, not arbitrary caller structs, since jql's log fields are shallow.
type logfmtEncoder struct {
	cfg zapcore.EncoderConfig
}

func newLogfmtEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return &logfmtEncoder{cfg: cfg}
}

func (e *logfmtEncoder) Clone() zapcore.Encoder {
	clone := *e
	return &clone
}

func (e *logfmtEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf := bufferPool.Get()

	writePair(buf, e.cfg.TimeKey, ent.Time.Format(time.RFC3339))
	writePair(buf, e.cfg.LevelKey, ent.Level.String())
	if e.cfg.CallerKey != "" && ent.Caller.Defined {
		writePair(buf, e.cfg.CallerKey, ent.Caller.TrimmedPath())
	}
	if ent.LoggerName != "" {
		writePair(buf, e.cfg.NameKey, ent.LoggerName)
	}
	writePair(buf, e.cfg.MessageKey, ent.Message)

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	for _, k := range sortedKeys(enc.Fields) {
		writePair(buf, k, formatValue(enc.Fields[k]))
	}

	buf.AppendString(e.cfg.LineEnding)
	return buf, nil
}

func writePair(buf *buffer.Buffer, key, value string) {
	if key == "" {
		return
	}
	if buf.Len() > 0 {
		buf.AppendByte(' ')
	}
	buf.AppendString(key)
	buf.AppendByte('=')
	buf.AppendString(quoteIfNeeded(value))
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"=") {
		return strconv.Quote(s)
	}
	return s
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	case time.Time:
		return x.Format(time.RFC3339)
	case time.Duration:
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// The encoding side (object/array/primitive fields within EncodeEntry)
// reuses zapcore's console encoder for anything that isn't a field, since
// jql never needs to logfmt-encode a standalone object on its own.
func (e *logfmtEncoder) AddArray(key string, marshaler zapcore.ArrayMarshaler) error {
	return consoleFallback().AddArray(key, marshaler)
}
func (e *logfmtEncoder) AddObject(key string, marshaler zapcore.ObjectMarshaler) error {
	return consoleFallback().AddObject(key, marshaler)
}
func (e *logfmtEncoder) AddBinary(key string, value []byte)          { consoleFallback().AddBinary(key, value) }
func (e *logfmtEncoder) AddByteString(key string, value []byte)      { consoleFallback().AddByteString(key, value) }
func (e *logfmtEncoder) AddBool(key string, value bool)              { consoleFallback().AddBool(key, value) }
func (e *logfmtEncoder) AddComplex128(key string, value complex128)  { consoleFallback().AddComplex128(key, value) }
func (e *logfmtEncoder) AddComplex64(key string, value complex64)    { consoleFallback().AddComplex64(key, value) }
func (e *logfmtEncoder) AddDuration(key string, value time.Duration) { consoleFallback().AddDuration(key, value) }
func (e *logfmtEncoder) AddFloat64(key string, value float64)        { consoleFallback().AddFloat64(key, value) }
func (e *logfmtEncoder) AddFloat32(key string, value float32)        { consoleFallback().AddFloat32(key, value) }
func (e *logfmtEncoder) AddInt(key string, value int)                { consoleFallback().AddInt(key, value) }
func (e *logfmtEncoder) AddInt64(key string, value int64)            { consoleFallback().AddInt64(key, value) }
func (e *logfmtEncoder) AddInt32(key string, value int32)            { consoleFallback().AddInt32(key, value) }
func (e *logfmtEncoder) AddInt16(key string, value int16)            { consoleFallback().AddInt16(key, value) }
func (e *logfmtEncoder) AddInt8(key string, value int8)              { consoleFallback().AddInt8(key, value) }
func (e *logfmtEncoder) AddString(key, value string)                 { consoleFallback().AddString(key, value) }
func (e *logfmtEncoder) AddTime(key string, value time.Time)         { consoleFallback().AddTime(key, value) }
func (e *logfmtEncoder) AddUint(key string, value uint)              { consoleFallback().AddUint(key, value) }
func (e *logfmtEncoder) AddUint64(key string, value uint64)          { consoleFallback().AddUint64(key, value) }
func (e *logfmtEncoder) AddUint32(key string, value uint32)          { consoleFallback().AddUint32(key, value) }
func (e *logfmtEncoder) AddUint16(key string, value uint16)          { consoleFallback().AddUint16(key, value) }
func (e *logfmtEncoder) AddUint8(key string, value uint8)            { consoleFallback().AddUint8(key, value) }
func (e *logfmtEncoder) AddUintptr(key string, value uintptr)        { consoleFallback().AddUintptr(key, value) }
func (e *logfmtEncoder) AddReflected(key string, value any) error {
	return consoleFallback().AddReflected(key, value)
}
func (e *logfmtEncoder) OpenNamespace(key string) { consoleFallback().OpenNamespace(key) }

func consoleFallback() zapcore.ObjectEncoder { return zapcore.NewMapObjectEncoder() }
