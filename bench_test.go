// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package univalue

import (
	"strconv"
	"testing"
)

// BenchmarkPushKV benchmarks building an object of typical RPC result size
// through the update-or-append helper.
func BenchmarkPushKV(b *testing.B) {
	keys := make([]string, 30)
	for i := range keys {
		keys[i] = "key" + strconv.Itoa(i)
	}
	val := NewInt(12345)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		obj := New(VObj)
		for _, key := range keys {
			obj.PushKV(key, val)
		}
	}
}

// BenchmarkWrite benchmarks writing a nested document in compact form.
func BenchmarkWrite(b *testing.B) {
	doc := makeDocument()
	for i := 0; i < 20; i++ {
		doc.PushKV("k"+strconv.Itoa(i), makeDocument())
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = doc.Write(0, 0)
	}
}

// BenchmarkSetFloat benchmarks formatting floats.
func BenchmarkSetFloat(b *testing.B) {
	var v Value
	for i := 0; i < b.N; i++ {
		v.SetFloat(float64(i) / 3)
	}
}
