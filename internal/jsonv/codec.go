package jsonv

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/tidwall/jsonc"
)

// DecodeOptions controls how a document stream is read
type DecodeOptions struct {
	// AllowComments strips // and /* */ comments and trailing commas first
	AllowComments bool
}

// Decode reads a whitespace separated stream of JSON documents, such as a
// JSON lines file. Object key order and duplicate keys are preserved.
func Decode(r io.Reader, opts DecodeOptions) ([]Value, error) {
	if opts.AllowComments {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return decodeStream(jsonc.ToJSON(data))
	}
	return decodeReader(r)
}

// DecodeBytes decodes a document stream held in memory
func DecodeBytes(data []byte) ([]Value, error) {
	return decodeStream(data)
}

func decodeStream(data []byte) ([]Value, error) {
	return decodeReader(bytes.NewReader(data))
}

func decodeReader(r io.Reader) ([]Value, error) {
	dec := jsontext.NewDecoder(r,
		jsontext.AllowDuplicateNames(true),
		jsontext.AllowInvalidUTF8(true),
	)

	var docs []Value
	for {
		v, err := decodeValue(dec)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode document %d: %w", len(docs)+1, err)
		}
		docs = append(docs, v)
	}
}

func decodeValue(dec *jsontext.Decoder) (Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return Value{}, err
	}

	switch tok.Kind() {
	case 'n':
		return Null(), nil
	case 't', 'f':
		return Bool(tok.Bool()), nil
	case '0':
		return Number(tok.String()), nil
	case '"':
		return String(tok.String()), nil
	case '[':
		return decodeArray(dec)
	case '{':
		return decodeObject(dec)
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok.Kind())
	}
}

func decodeArray(dec *jsontext.Decoder) (Value, error) {
	var items []Value
	for dec.PeekKind() != ']' {
		v, err := decodeValue(dec)
		if err != nil {
			return Value{}, fmt.Errorf("array element %d: %w", len(items), unexpectedEOF(err))
		}
		items = append(items, v)
	}
	if _, err := dec.ReadToken(); err != nil { // consume closing ']'
		return Value{}, fmt.Errorf("read closing ']': %w", unexpectedEOF(err))
	}
	return Array(items...), nil
}

func decodeObject(dec *jsontext.Decoder) (Value, error) {
	var pairs []Pair
	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return Value{}, fmt.Errorf("read object key: %w", unexpectedEOF(err))
		}
		key := tok.String()
		v, err := decodeValue(dec)
		if err != nil {
			return Value{}, fmt.Errorf("read value for key %q: %w", key, unexpectedEOF(err))
		}
		pairs = append(pairs, Pair{Key: key, Value: v})
	}
	if _, err := dec.ReadToken(); err != nil { // consume closing '}'
		return Value{}, fmt.Errorf("read closing '}': %w", unexpectedEOF(err))
	}
	return Object(pairs...), nil
}

// unexpectedEOF keeps a truncated container from looking like a clean end of stream
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// EncodeOptions controls how documents are written
type EncodeOptions struct {
	// Indent pretty prints each document when non-empty
	Indent string
}

// Encode writes each document followed by a newline
func Encode(w io.Writer, docs []Value, opts EncodeOptions) error {
	enc := newEncoder(w, opts.Indent)
	for i, doc := range docs {
		if err := encodeValue(enc, doc); err != nil {
			return fmt.Errorf("failed to encode document %d: %w", i+1, err)
		}
	}
	return nil
}

// EncodeValue writes a single value followed by a newline
func EncodeValue(w io.Writer, v Value, indent string) error {
	return encodeValue(newEncoder(w, indent), v)
}

func newEncoder(w io.Writer, indent string) *jsontext.Encoder {
	opts := []jsontext.Options{
		jsontext.AllowDuplicateNames(true),
		jsontext.AllowInvalidUTF8(true),
	}
	if indent != "" {
		opts = append(opts, jsontext.Multiline(true), jsontext.WithIndent(indent), jsontext.SpaceAfterColon(true))
	}
	return jsontext.NewEncoder(w, opts...)
}

func encodeValue(enc *jsontext.Encoder, v Value) error {
	switch v.Kind() {
	case KindNull:
		return enc.WriteToken(jsontext.Null)
	case KindBool:
		return enc.WriteToken(jsontext.Bool(v.Bool()))
	case KindNumber:
		return enc.WriteValue(jsontext.Value(v.Text()))
	case KindString:
		return enc.WriteToken(jsontext.String(v.Text()))
	case KindArray:
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for i := 0; i < v.Len(); i++ {
			if err := encodeValue(enc, v.Index(i)); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndArray)
	case KindObject:
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		for i := 0; i < v.Len(); i++ {
			p := v.Pair(i)
			if err := enc.WriteToken(jsontext.String(p.Key)); err != nil {
				return err
			}
			if err := encodeValue(enc, p.Value); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndObject)
	}
	return fmt.Errorf("unknown kind %d", v.Kind())
}
