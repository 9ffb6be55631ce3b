package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-jwt-secret")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	token, err := Issue(Claims{UserID: "42", IsAdmin: true}, secret, DefaultTTL)
	require.NoError(t, err)

	claims, err := Verify(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.True(t, claims.IsAdmin)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 2*time.Second)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := Issue(Claims{UserID: "42"}, secret, DefaultTTL)
	require.NoError(t, err)

	_, err = Verify(token, []byte("other-secret"))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_TamperedPayload(t *testing.T) {
	t.Parallel()

	token, err := Issue(Claims{UserID: "42", IsAdmin: false}, secret, DefaultTTL)
	require.NoError(t, err)

	forged, err := Issue(Claims{UserID: "42", IsAdmin: true}, []byte("attacker"), DefaultTTL)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = Verify(tampered, secret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestService_ExpiryWindow(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := &Service{Secret: secret, TTL: time.Hour, Now: fixedClock(issued)}

	token, exp, err := svc.Issue("7", false)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(time.Hour), exp)

	svc.Now = fixedClock(issued.Add(59 * time.Minute))
	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.UserID)
	assert.False(t, claims.IsAdmin)

	svc.Now = fixedClock(issued.Add(61 * time.Minute))
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "three garbage parts", token: "a.b.c"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Verify(tt.token, secret)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := Claims{
		UserID:  "1",
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = Verify(token, secret)
	assert.Error(t, err)
}

func TestVerify_MissingExpiry(t *testing.T) {
	t.Parallel()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "1"}).SignedString(secret)
	require.NoError(t, err)

	_, err = Verify(token, secret)
	assert.ErrorIs(t, err, ErrMalformed)
}
