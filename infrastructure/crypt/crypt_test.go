package crypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipher_EncryptDecrypt(t *testing.T) {
	c, err := NewCipher("s3cret")
	require.NoError(t, err)

	link := "https://portal.bitrix24.ru/rest/1/abcdef/"

	encrypted, err := c.Encrypt(link)
	require.NoError(t, err)
	assert.NotContains(t, encrypted, "bitrix24")

	decrypted, err := c.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, link, decrypted)

	again, err := c.Encrypt(link)
	require.NoError(t, err)
	assert.NotEqual(t, encrypted, again, "nonce deve variar entre cifragens")
}

func TestCipher_Decrypt_Errors(t *testing.T) {
	c, err := NewCipher("s3cret")
	require.NoError(t, err)

	other, err := NewCipher("outra-chave")
	require.NoError(t, err)

	encrypted, err := other.Encrypt("https://portal.bitrix24.ru/rest/1/abcdef/")
	require.NoError(t, err)

	tests := []struct {
		name       string
		ciphertext string
		wantErr    error
	}{
		{name: "vazio", ciphertext: "  ", wantErr: ErrEmptyCiphertext},
		{name: "base64 inválido", ciphertext: "%%%", wantErr: ErrMalformed},
		{name: "curto demais", ciphertext: "AAAA", wantErr: ErrMalformed},
		{name: "chave errada", ciphertext: encrypted, wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decrypt(tt.ciphertext)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewCipher_EmptySecret(t *testing.T) {
	_, err := NewCipher("")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
