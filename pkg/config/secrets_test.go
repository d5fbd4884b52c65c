package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretsFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	secrets := map[string]string{
		SecretAnthropicKey:  "sk-ant-test",
		SecretAdminPassword: "hunter2",
	}

	assert.False(t, SecretsFileExists(dir))
	require.NoError(t, EncryptSecretsFile(dir, "master-pw", secrets))
	assert.True(t, SecretsFileExists(dir))

	got, err := DecryptSecretsFile(dir, "master-pw")
	require.NoError(t, err)
	assert.Equal(t, secrets, got)
}

func TestDecryptWrongPassword(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, EncryptSecretsFile(dir, "right", map[string]string{"K": "v"}))

	_, err := DecryptSecretsFile(dir, "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong password")
}

func TestDecryptRejectsTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, secretsDirName, secretsFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("too short"), 0600))

	_, err := DecryptSecretsFile(dir, "any")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupted")
}

func TestSecretsFilePermissions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, EncryptSecretsFile(dir, "pw", map[string]string{"K": "v"}))

	info, err := os.Stat(filepath.Join(dir, secretsDirName, secretsFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestGetSecretPrecedence(t *testing.T) {
	t.Cleanup(func() { SetDecryptedSecrets(nil) })

	t.Setenv("XIGILED_TEST_SECRET", "from-env")
	value, err := GetSecret("XIGILED_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)

	// The decrypted store wins over the environment.
	SetDecryptedSecrets(map[string]string{"XIGILED_TEST_SECRET": "from-file"})
	value, err = GetSecret("XIGILED_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)

	_, err = GetSecret("XIGILED_TEST_SECRET_MISSING")
	assert.Error(t, err)

	SetSecret("XIGILED_TEST_SECRET_MISSING", "set-later")
	value, err = GetSecret("XIGILED_TEST_SECRET_MISSING")
	require.NoError(t, err)
	assert.Equal(t, "set-later", value)
}
