// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package univalue_test

import (
	"errors"
	"fmt"

	"github.com/decred/univalue"
)

// This example demonstrates building a nested document, updating a key in
// place, and writing it out.
func Example_buildDocument() {
	fees := univalue.New(univalue.VArr)
	fees.PushBack(univalue.NewNumStr("0.00010000"))
	fees.PushBack(univalue.NewNumStr("0.00025000"))

	result := univalue.New(univalue.VObj)
	result.PushKV("height", univalue.NewInt(int64(100000)))
	result.PushKV("hash", univalue.NewStr("00000000000000000000"))
	result.PushKV("fees", fees)
	result.PushKV("height", univalue.NewInt(int64(100001)))

	fmt.Println(result.Write(2, 0))

	// Output:
	// {
	//   "height": 100001,
	//   "hash": "00000000000000000000",
	//   "fees": [
	//     0.00010000,
	//     0.00025000
	//   ]
	// }
}

// This example demonstrates the difference between the lookups that never
// fail and the ones that return an error.
func Example_lookups() {
	obj := univalue.New(univalue.VObj)
	obj.PushKV("name", univalue.NewStr("dcrd"))

	// Missing keys yield null.
	fmt.Println(obj.Get("missing").IsNull())

	// At reports why the lookup failed.
	_, err := obj.At("missing")
	fmt.Println(errors.Is(err, univalue.ErrKeyNotFound), err)

	_, err = obj.Get("name").AtIndex(0)
	fmt.Println(errors.Is(err, univalue.ErrWrongType))

	// Output:
	// true
	// true Key not found in JSON object: missing
	// true
}

// This example demonstrates that invalid numbers are ignored by the numeric
// setters.
func Example_numbers() {
	v := univalue.NewStr("unchanged")
	v.SetNumStr("12abc")
	fmt.Println(v)

	v.SetFloat(0.1)
	fmt.Println(v)

	v.SetNumStr("1.50")
	fmt.Println(v, v.Equal(univalue.NewNumStr("1.5")))

	// Output:
	// "unchanged"
	// 0.1
	// 1.50 false
}
