package jsonv

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStream(t *testing.T) {
	docs, err := Decode(strings.NewReader(`{"b":1,"a":[true,null,"x"]}
2.50
"hi"`), DecodeOptions{})
	require.NoError(t, err)
	require.Len(t, docs, 3)

	obj := docs[0]
	assert.Equal(t, KindObject, obj.Kind())
	require.Equal(t, 2, obj.Len())
	assert.Equal(t, "b", obj.Pair(0).Key, "object order must be preserved")
	assert.Equal(t, "a", obj.Pair(1).Key)

	arr := obj.Index(1)
	assert.Equal(t, KindArray, arr.Kind())
	assert.True(t, arr.Index(0).Bool())
	assert.Equal(t, KindNull, arr.Index(1).Kind())
	assert.Equal(t, "x", arr.Index(2).Text())

	assert.Equal(t, "2.50", docs[1].Text(), "number literal is kept verbatim")
	assert.Equal(t, "hi", docs[2].Text())
}

func TestDecodeDuplicateKeys(t *testing.T) {
	docs, err := DecodeBytes([]byte(`{"a":1,"a":2}`))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 2, docs[0].Len())
}

func TestDecodeEmptyInput(t *testing.T) {
	docs, err := Decode(strings.NewReader("  \n"), DecodeOptions{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"a": [1, 2`), DecodeOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document 1")

	_, err = Decode(strings.NewReader(`{"a": }`), DecodeOptions{})
	require.Error(t, err)
}

func TestDecodeComments(t *testing.T) {
	src := `{
  // the answer
  "a": 42, /* trailing */
}`
	_, err := Decode(strings.NewReader(src), DecodeOptions{})
	require.Error(t, err)

	docs, err := Decode(strings.NewReader(src), DecodeOptions{AllowComments: true})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "42", docs[0].Index(0).Text())
}

func TestEncodeCompactAndPretty(t *testing.T) {
	docs, err := DecodeBytes([]byte(`{"a":1,"b":[2,3]} "s"`))
	require.NoError(t, err)

	var compact bytes.Buffer
	require.NoError(t, Encode(&compact, docs, EncodeOptions{}))
	assert.Equal(t, "{\"a\":1,\"b\":[2,3]}\n\"s\"\n", compact.String())

	var pretty bytes.Buffer
	require.NoError(t, Encode(&pretty, docs[:1], EncodeOptions{Indent: "  "}))
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    2,\n    3\n  ]\n}\n", pretty.String())
}

func TestValueString(t *testing.T) {
	v := Object(Pair{Key: "k", Value: Array(Null(), Bool(false), Number("1e3"), String("q\""))})
	assert.Equal(t, `{"k":[null,false,1e3,"q\""]}`, v.String())
	assert.Equal(t, "null", Value{}.String())
}

func TestScalar(t *testing.T) {
	tests := []struct {
		v    Value
		want string
		ok   bool
	}{
		{Null(), "null", true},
		{Bool(true), "true", true},
		{Bool(false), "false", true},
		{Number("-0.5"), "-0.5", true},
		{String("raw \n text"), "raw \n text", true},
		{Array(), "", false},
		{Object(), "", false},
	}
	for _, tt := range tests {
		got, ok := tt.v.Scalar()
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.want, got)
	}
}

func TestEqualAndSame(t *testing.T) {
	a, err := DecodeBytes([]byte(`{"x":[1,{"y":null}]}`))
	require.NoError(t, err)
	b, err := DecodeBytes([]byte(`{"x":[1,{"y":null}]}`))
	require.NoError(t, err)

	assert.True(t, a[0].Equal(b[0]))
	assert.False(t, a[0].Same(b[0]))

	cp := a[0]
	assert.True(t, cp.Same(a[0]), "copies share their node")

	c, err := DecodeBytes([]byte(`{"x":[1,{"y":false}]}`))
	require.NoError(t, err)
	assert.False(t, a[0].Equal(c[0]))
}

func TestToAnyFromAny(t *testing.T) {
	docs, err := DecodeBytes([]byte(`{"z":1,"a":[1.5,"s",null,true]}`))
	require.NoError(t, err)

	generic := ToAny(docs[0]).(map[string]any)
	assert.Equal(t, float64(1), generic["z"])

	exact := ToAnyExact(docs[0]).(map[string]any)
	assert.Equal(t, 1, exact["z"])

	back, err := FromAny(generic)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1.5,"s",null,true],"z":1}`, back.String(), "keys come back sorted")

	huge, err := FromAny(new(big.Int).Lsh(big.NewInt(1), 80))
	require.NoError(t, err)
	assert.Equal(t, "1208925819614629174706176", huge.Text())

	_, err = FromAny(struct{}{})
	assert.Error(t, err)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "3", FormatFloat(3))
	assert.Equal(t, "0.25", FormatFloat(0.25))
	assert.Equal(t, "1e+21", FormatFloat(1e21))
	assert.Equal(t, "1e-07", FormatFloat(1e-7))
	assert.Equal(t, "0", FormatFloat(0))
}
