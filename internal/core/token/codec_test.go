package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/internal/domain"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCodec(t *testing.T, ttl time.Duration) (*Codec, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	c, err := NewCodec(testSecret, ttl, WithClock(clock.Now))
	require.NoError(t, err)
	return c, clock
}

func TestNewCodec_RejectsShortSecret(t *testing.T) {
	_, err := NewCodec([]byte("too-short"), time.Hour)
	require.ErrorIs(t, err, domain.ErrWeakSecret)
}

func TestNewCodec_TTL(t *testing.T) {
	c, err := NewCodec(testSecret, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, c.TTL())

	_, err = NewCodec(testSecret, -time.Second)
	require.Error(t, err)
}

func TestIssue_ValidImmediately(t *testing.T) {
	for _, ttl := range []time.Duration{time.Second, time.Minute, 24 * time.Hour, 7 * 24 * time.Hour} {
		c, _ := newTestCodec(t, ttl)

		tok, err := c.Issue("john@example.com", nil)
		require.NoError(t, err)
		assert.Equal(t, 3, len(strings.Split(tok, ".")))

		ok, err := c.Validate(tok, "john@example.com")
		require.NoError(t, err)
		assert.True(t, ok, "ttl %s", ttl)
	}
}

func TestIssue_ClaimLayout(t *testing.T) {
	c, clock := newTestCodec(t, time.Hour)

	tok, err := c.Issue("john@example.com", map[string]any{"role": "USER", "sub": "attacker"})
	require.NoError(t, err)

	payload, err := base64.RawURLEncoding.DecodeString(strings.Split(tok, ".")[1])
	require.NoError(t, err)

	var claims map[string]any
	require.NoError(t, json.Unmarshal(payload, &claims))
	assert.Equal(t, "john@example.com", claims["sub"])
	assert.Equal(t, "USER", claims["role"])
	assert.EqualValues(t, clock.t.Unix(), claims["iat"])
	assert.EqualValues(t, clock.t.Add(time.Hour).Unix(), claims["exp"])

	again, err := c.Issue("john@example.com", map[string]any{"role": "USER"})
	require.NoError(t, err)
	assert.Equal(t, tok, again, "same claims at the same instant must encode identically")
}

func TestIssue_EmptySubject(t *testing.T) {
	c, _ := newTestCodec(t, time.Hour)
	_, err := c.Issue("", nil)
	require.Error(t, err)
}

func TestValidate_ExpiredIsFalseNotError(t *testing.T) {
	c, clock := newTestCodec(t, time.Hour)

	tok, err := c.Issue("john@example.com", nil)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	ok, err := c.Validate(tok, "john@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	clock.Advance(time.Minute)
	ok, err = c.Validate(tok, "john@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	sub, err := c.ExtractSubject(tok)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", sub)
}

func TestValidate_SubjectMismatch(t *testing.T) {
	c, _ := newTestCodec(t, time.Hour)

	tok, err := c.Issue("john@example.com", nil)
	require.NoError(t, err)

	ok, err := c.Validate(tok, "John@example.com")
	require.NoError(t, err)
	assert.False(t, ok, "subject comparison is case-sensitive")

	ok, err = c.Validate(tok, "jane@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExtractExpiry(t *testing.T) {
	c, clock := newTestCodec(t, 90*time.Minute)

	tok, err := c.Issue("john@example.com", nil)
	require.NoError(t, err)

	exp, err := c.ExtractExpiry(tok)
	require.NoError(t, err)
	assert.True(t, exp.Equal(clock.t.Add(90*time.Minute)))
}

func TestDecode_ForeignSecret(t *testing.T) {
	other, err := NewCodec([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
	require.NoError(t, err)
	c, _ := newTestCodec(t, time.Hour)

	tok, err := other.Issue("john@example.com", nil)
	require.NoError(t, err)

	_, err = c.ExtractSubject(tok)
	require.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = c.ExtractExpiry(tok)
	require.ErrorIs(t, err, domain.ErrInvalidToken)

	ok, err := c.Validate(tok, "john@example.com")
	require.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.False(t, ok)
}

func TestDecode_Malformed(t *testing.T) {
	c, _ := newTestCodec(t, time.Hour)

	for _, raw := range []string{"", "garbage", "not.a.jwt", "a.b", "....."} {
		_, err := c.ExtractSubject(raw)
		require.ErrorIs(t, err, domain.ErrInvalidToken, "input %q", raw)
	}
}

func TestDecode_TamperedPayload(t *testing.T) {
	c, _ := newTestCodec(t, time.Hour)

	tok, err := c.Issue("john@example.com", nil)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"admin@example.com","exp":4102444800}`))
	_, err = c.ExtractSubject(parts[0] + "." + forged + "." + parts[2])
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestDecode_RejectsOtherAlgorithms(t *testing.T) {
	c, _ := newTestCodec(t, time.Hour)

	claims := jwt.MapClaims{"sub": "john@example.com", "exp": time.Now().Add(time.Hour).Unix()}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = c.ExtractSubject(none)
	require.ErrorIs(t, err, domain.ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
	require.NoError(t, err)
	_, err = c.ExtractSubject(hs512)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestDecode_MissingRequiredClaims(t *testing.T) {
	c, _ := newTestCodec(t, time.Hour)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(testSecret)
	require.NoError(t, err)
	_, err = c.ExtractSubject(noSub)
	require.ErrorIs(t, err, domain.ErrInvalidToken)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "john@example.com",
	}).SignedString(testSecret)
	require.NoError(t, err)
	_, err = c.ExtractSubject(noExp)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}
