// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bitmark-inc/exitwithstatus"
)

// command output is a single json object keyed by result name
func printJson(w io.Writer, title string, message interface{}) {
	b, err := json.MarshalIndent(map[string]interface{}{
		title: message,
	}, "", "  ")
	if nil != err {
		exitwithstatus.Message("json marshal error: %s", err)
	}
	fmt.Fprintf(w, "%s\n", b)
}
