package peerid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestIdentityString(t *testing.T) {
	for _, tt := range []struct {
		name string
		id   Identity
		want string
	}{
		{name: "none", id: None(), want: "none"},
		{name: "zero value", id: Identity{}, want: "none"},
		{name: "any", id: Any(), want: "any"},
		{name: "value", id: ValueOf(42), want: "42"},
		{name: "negative value", id: ValueOf(-1), want: "-1"},
		{name: "zero", id: ValueOf(0), want: "0"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.String())
		})
	}
}

func TestIdentityInt32(t *testing.T) {
	n, ok := ValueOf(-7).Int32()
	assert.True(t, ok)
	assert.Equal(t, int32(-7), n)

	_, ok = None().Int32()
	assert.False(t, ok)
	_, ok = Any().Int32()
	assert.False(t, ok)

	assert.Equal(t, KindNone, None().Kind())
	assert.Equal(t, KindAny, Any().Kind())
	assert.Equal(t, KindValue, ValueOf(1).Kind())
}

func TestIdentityComparable(t *testing.T) {
	assert.Equal(t, ValueOf(10), ValueOf(10))
	assert.NotEqual(t, ValueOf(10), ValueOf(11))
	assert.NotEqual(t, None(), ValueOf(0))
	assert.NotEqual(t, Any(), None())
}

func TestParseIdentity(t *testing.T) {
	for _, s := range []string{"none", "any", "0", "42", "-1", "2147483647", "-2147483648"} {
		id, err := ParseIdentity(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, id.String())
	}

	for _, s := range []string{"", "NONE", "4.2", "pid", "2147483648"} {
		_, err := ParseIdentity(s)
		assert.Error(t, err, s)
	}
}

func TestIdentityYAML(t *testing.T) {
	type doc struct {
		Peer Identity `yaml:"peer"`
	}

	var d doc
	require.NoError(t, yaml.Unmarshal([]byte("peer: any\n"), &d))
	assert.Equal(t, Any(), d.Peer)

	require.NoError(t, yaml.Unmarshal([]byte("peer: \"1234\"\n"), &d))
	assert.Equal(t, ValueOf(1234), d.Peer)

	out, err := yaml.Marshal(doc{Peer: ValueOf(-1)})
	require.NoError(t, err)
	assert.Equal(t, "peer: \"-1\"\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("peer: nobody\n"), &d))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "value", KindValue.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestSentinelsAreFreshValues(t *testing.T) {
	id := Any()
	_ = id.UnmarshalText([]byte("7"))
	assert.Equal(t, ValueOf(7), id)
	assert.Equal(t, KindAny, Any().Kind())
	assert.Equal(t, Identity{}, None())
}
