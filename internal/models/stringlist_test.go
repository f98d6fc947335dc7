package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_Value(t *testing.T) {
	t.Parallel()

	// nil сериализуется как пустой массив, не как null
	var empty StringList
	v, err := empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	list := StringList{"instagram", "tiktok"}
	v, err = list.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["instagram","tiktok"]`, v.(string))
}

func TestStringList_Scan(t *testing.T) {
	t.Parallel()

	var list StringList
	require.NoError(t, list.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, StringList{"a", "b"}, list)

	var fromString StringList
	require.NoError(t, fromString.Scan(`["x"]`))
	assert.Equal(t, StringList{"x"}, fromString)

	var fromNull StringList
	require.NoError(t, fromNull.Scan(nil))
	assert.Equal(t, StringList{}, fromNull)

	var fromJSONNull StringList
	require.NoError(t, fromJSONNull.Scan([]byte(`null`)))
	assert.Equal(t, StringList{}, fromJSONNull)
}

// Битый JSON в колонке не роняет чтение строки:
// сырое значение оборачивается в одноэлементный список
func TestStringList_ScanMalformed(t *testing.T) {
	t.Parallel()

	var list StringList
	require.NoError(t, list.Scan([]byte(`not-json`)))
	assert.Equal(t, StringList{"not-json"}, list)
}

func TestStringList_RoundTrip(t *testing.T) {
	t.Parallel()

	orig := StringList{"€€", "comedy", ""}
	v, err := orig.Value()
	require.NoError(t, err)

	var back StringList
	require.NoError(t, back.Scan(v))
	assert.Equal(t, orig, back)
}
