package configs

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("SMTP_USER", "shop@example.com")
	t.Setenv("FROM_EMAIL", "")
	t.Setenv("JWT_TTL", "not-a-duration")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")

	env := LoadEnv()

	assert.Equal(t, ":8080", env.Port)
	assert.Equal(t, "shop@example.com", env.FromEmail)
	assert.Equal(t, 7*24*time.Hour, env.JWTTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, env.CORSOrigins)
}

func TestValidateJWTSecret(t *testing.T) {
	assert.NoError(t, ENV{AppEnv: "development", JWTSecret: DefaultJWTSecret}.Validate())
	assert.ErrorIs(t, ENV{AppEnv: "production", JWTSecret: DefaultJWTSecret}.Validate(), ErrInsecureJWTSecret)
	assert.ErrorIs(t, ENV{AppEnv: "production"}.Validate(), ErrInsecureJWTSecret)
	assert.NoError(t, ENV{AppEnv: "production", JWTSecret: "a-real-secret"}.Validate())

	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	assert.ErrorIs(t, LoadEnv().Validate(), ErrInsecureJWTSecret)
}

func TestDSN(t *testing.T) {
	env := ENV{DBDriver: "mysql", DBUser: "root", DBPassword: "pw", DBHost: "db", DBPort: "3306", DBName: "vendoz"}
	assert.Equal(t, "root:pw@tcp(db:3306)/vendoz?charset=utf8mb4&parseTime=True&loc=Local", env.DSN())

	env.DBDriver = "postgres"
	env.DBPort = "5432"
	assert.Contains(t, env.DSN(), "host=db user=root password=pw dbname=vendoz port=5432")

	env.DBDriver = "sqlite"
	assert.Equal(t, "vendoz.db", env.DSN())

	env.DatabaseURL = "postgres://elsewhere"
	assert.Equal(t, "postgres://elsewhere", env.DSN())

	_, err := dialector(ENV{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestOpenConnectionStampsUTC(t *testing.T) {
	env := ENV{DBDriver: "sqlite", DatabaseURL: "file:configs-utc?mode=memory&cache=shared", DBMaxRetries: 1}
	db, err := OpenConnection(env)
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseConnection(db) })

	assert.Equal(t, time.UTC, db.NowFunc().Location())
}

func TestGenerateSecret(t *testing.T) {
	_, err := GenerateSecret(16)
	assert.Error(t, err)

	secret, err := GenerateSecret(64)
	require.NoError(t, err)
	raw, err := base64.URLEncoding.DecodeString(secret)
	require.NoError(t, err)
	assert.Len(t, raw, 64)

	path := filepath.Join(t.TempDir(), ".env.secret")
	var out strings.Builder
	require.NoError(t, GenerateAndPrintSecret(&out, path))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(written), "JWT_SECRET="))
	assert.True(t, strings.HasPrefix(out.String(), string(written)))
}
