package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodecRejectsEmptySecret(t *testing.T) {
	_, err := NewCodec("")
	require.ErrorIs(t, err, ErrNoSecret)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec, err := NewCodec("test-secret")
	require.NoError(t, err)

	payload := Payload{
		Email:     "ops@acmebus.example",
		Name:      "Acme Bus",
		ExpiresAt: time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second),
	}

	tok, err := codec.Encode(payload)
	require.NoError(t, err)
	assert.Contains(t, tok, ":")

	got, err := codec.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, payload.Email, got.Email)
	assert.Equal(t, payload.Name, got.Name)
	assert.True(t, payload.ExpiresAt.Equal(got.ExpiresAt))
}

func TestEncodeIsNonDeterministic(t *testing.T) {
	codec, err := NewCodec("test-secret")
	require.NoError(t, err)

	payload := Payload{Email: "a@example.com", Name: "A", ExpiresAt: time.Now().Add(time.Hour)}

	tok1, err := codec.Encode(payload)
	require.NoError(t, err)
	tok2, err := codec.Encode(payload)
	require.NoError(t, err)

	assert.NotEqual(t, tok1, tok2, "fresh nonce per call must produce distinct tokens")

	got1, err := codec.Decode(tok1)
	require.NoError(t, err)
	got2, err := codec.Decode(tok2)
	require.NoError(t, err)
	assert.Equal(t, got1.Email, got2.Email)
}

func TestDecodeWrongSecret(t *testing.T) {
	codec, err := NewCodec("right-secret")
	require.NoError(t, err)
	other, err := NewCodec("wrong-secret")
	require.NoError(t, err)

	tok, err := codec.Encode(Payload{Email: "a@example.com", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	_, err = other.Decode(tok)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecodeMalformed(t *testing.T) {
	codec, err := NewCodec("test-secret")
	require.NoError(t, err)

	tests := []struct {
		name string
		tok  string
	}{
		{name: "empty", tok: ""},
		{name: "no separator", tok: "deadbeef"},
		{name: "non-hex nonce", tok: "zzzz:deadbeef"},
		{name: "non-hex ciphertext", tok: "deadbeefdeadbeefdeadbeef:zzzz"},
		{name: "short nonce", tok: "dead:beef"},
		{name: "truncated ciphertext", tok: "deadbeefdeadbeefdeadbeef:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.tok)
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestDecodeTamperedCiphertext(t *testing.T) {
	codec, err := NewCodec("test-secret")
	require.NoError(t, err)

	tok, err := codec.Encode(Payload{Email: "a@example.com", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	// flip the final hex digit of the ciphertext
	flipped := "0"
	if strings.HasSuffix(tok, "0") {
		flipped = "1"
	}
	tampered := tok[:len(tok)-1] + flipped

	_, err = codec.Decode(tampered)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestPayloadIsExpired(t *testing.T) {
	future := Payload{ExpiresAt: time.Now().Add(time.Minute)}
	assert.False(t, future.IsExpired())

	past := Payload{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.True(t, past.IsExpired())
}
