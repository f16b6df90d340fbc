// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	// Digests implement encoding.TextMarshaler and serialize as hex
	// text strings, matching the manifest and JSON forms.
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("record: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("record: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes a record.
func Marshal(r Record) ([]byte, error) {
	return encMode.Marshal(r)
}

// Unmarshal decodes a single record.
func Unmarshal(data []byte) (Record, error) {
	var r Record
	err := decMode.Unmarshal(data, &r)
	return r, err
}

// Diagnose renders every item of a CBOR sequence in diagnostic
// notation (RFC 8949 §8), one item per line.
func Diagnose(data []byte) (string, error) {
	var lines []string
	for len(data) > 0 {
		notation, rest, err := cbor.DiagnoseFirst(data)
		if err != nil {
			return "", err
		}
		lines = append(lines, notation)
		data = rest
	}
	return strings.Join(lines, "\n"), nil
}
