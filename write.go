// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package univalue

import "strings"

const hexDigits = "0123456789abcdef"

// writeEscaped writes s as a quoted JSON string.  Quotes, backslashes, every
// control character and DEL are escaped.  Everything else, including
// multi-byte UTF-8 sequences, is written verbatim.
func writeEscaped(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' && c != 0x7f {
			continue
		}
		sb.WriteString(s[start:i])
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteString(`\u00`)
			sb.WriteByte(hexDigits[c>>4])
			sb.WriteByte(hexDigits[c&0x0f])
		}
		start = i + 1
	}
	sb.WriteString(s[start:])
	sb.WriteByte('"')
}

// writeIndent writes the indentation for the provided nesting level.
func writeIndent(sb *strings.Builder, prettyIndent, level int) {
	if level > 0 {
		sb.WriteString(strings.Repeat(" ", prettyIndent*level))
	}
}

// Write returns the JSON text of the value.  A zero prettyIndent produces
// compact output.  Otherwise every element of an array or object is written
// on its own line, indented by prettyIndent spaces per nesting level starting
// from indentLevel.
func (v *Value) Write(prettyIndent, indentLevel int) string {
	if prettyIndent < 0 {
		prettyIndent = 0
	}
	var sb strings.Builder
	v.write(&sb, prettyIndent, indentLevel)
	return sb.String()
}

func (v *Value) write(sb *strings.Builder, prettyIndent, indentLevel int) {
	level := indentLevel
	if level <= 0 {
		level = 1
	}
	switch v.Type() {
	case VNull:
		sb.WriteString("null")
	case VFalse:
		sb.WriteString("false")
	case VTrue:
		sb.WriteString("true")
	case VNum:
		sb.WriteString(v.val)
	case VStr:
		writeEscaped(sb, v.val)
	case VArr:
		v.writeArray(sb, prettyIndent, level)
	case VObj:
		v.writeObject(sb, prettyIndent, level)
	}
}

func (v *Value) writeArray(sb *strings.Builder, prettyIndent, level int) {
	sb.WriteByte('[')
	if prettyIndent > 0 {
		sb.WriteByte('\n')
	}
	elems := v.values.values
	for i := range elems {
		if prettyIndent > 0 {
			writeIndent(sb, prettyIndent, level)
		}
		elems[i].write(sb, prettyIndent, level+1)
		if i != len(elems)-1 {
			sb.WriteByte(',')
		}
		if prettyIndent > 0 {
			sb.WriteByte('\n')
		}
	}
	if prettyIndent > 0 {
		writeIndent(sb, prettyIndent, level-1)
	}
	sb.WriteByte(']')
}

func (v *Value) writeObject(sb *strings.Builder, prettyIndent, level int) {
	sb.WriteByte('{')
	if prettyIndent > 0 {
		sb.WriteByte('\n')
	}
	pairs := v.entries.pairs
	for i := range pairs {
		if prettyIndent > 0 {
			writeIndent(sb, prettyIndent, level)
		}
		writeEscaped(sb, pairs[i].key)
		sb.WriteByte(':')
		if prettyIndent > 0 {
			sb.WriteByte(' ')
		}
		pairs[i].val.write(sb, prettyIndent, level+1)
		if i != len(pairs)-1 {
			sb.WriteByte(',')
		}
		if prettyIndent > 0 {
			sb.WriteByte('\n')
		}
	}
	if prettyIndent > 0 {
		writeIndent(sb, prettyIndent, level-1)
	}
	sb.WriteByte('}')
}

// String returns the compact JSON text of the value.
func (v *Value) String() string {
	return v.Write(0, 0)
}

// MarshalJSON satisfies the json.Marshaler interface so values may be embedded
// in structures encoded by encoding/json.
func (v *Value) MarshalJSON() ([]byte, error) {
	return []byte(v.Write(0, 0)), nil
}
