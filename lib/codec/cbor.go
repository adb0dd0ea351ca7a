// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = encodeOptions().EncMode(); err != nil {
		panic("codec: building CBOR encoder: " + err.Error())
	}
	if decMode, err = decodeOptions().DecMode(); err != nil {
		panic("codec: building CBOR decoder: " + err.Error())
	}
}

// encodeOptions is Core Deterministic Encoding (RFC 8949 §4.2), so a
// frame always encodes to the same bytes, with two changes for
// recordings: values implementing encoding.TextMarshaler (hands,
// easings, frame kinds) are written as their names, and times keep
// nanoseconds and their zone offset.
func encodeOptions() cbor.EncOptions {
	options := cbor.CoreDetEncOptions()
	options.TextMarshaler = cbor.TextMarshalerTextString
	options.Time = cbor.TimeRFC3339Nano
	return options
}

// decodeOptions mirrors encodeOptions. Frames are flat maps, so nesting
// is capped low, and a map repeating a key is rejected rather than
// letting the last value win. Unknown keys are ignored so newer
// recordings stay readable.
func decodeOptions() cbor.DecOptions {
	return cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		MaxNestedLevels: 16,
	}
}

// Marshal encodes v deterministically.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes one CBOR item from data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Encoder writes a CBOR sequence (RFC 8742), one item per Encode.
type Encoder = cbor.Encoder

// Decoder reads a CBOR sequence one item per Decode and returns io.EOF
// at a clean end.
type Decoder = cbor.Decoder

func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}

// Diagnose returns the diagnostic notation (RFC 8949 §8) of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// DiagnoseFirst returns the diagnostic notation of the first item in
// data and the bytes after it, for walking a sequence item by item.
func DiagnoseFirst(data []byte) (string, []byte, error) {
	return cbor.DiagnoseFirst(data)
}
