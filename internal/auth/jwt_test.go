package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCodec(now func() time.Time) *Codec {
	return NewCodec(CodecConfig{
		Secret:     []byte("test-secret"),
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		Now:        now,
	})
}

func TestCodec_IssueAndVerify(t *testing.T) {
	c := testCodec(nil)
	id := uuid.New()

	access, refresh, err := c.IssuePair(id, "a@b.com")
	require.NoError(t, err)
	require.NotEqual(t, access, refresh)

	cl, err := c.Verify(access, TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, id, cl.UserID())
	assert.Equal(t, "a@b.com", cl.Email)

	cl, err = c.Verify(refresh, TokenRefresh)
	require.NoError(t, err)
	assert.Equal(t, id, cl.UserID())
}

func TestCodec_KindMismatch(t *testing.T) {
	c := testCodec(nil)

	access, err := c.Issue(uuid.New(), "a@b.com", TokenAccess)
	require.NoError(t, err)

	_, err = c.Verify(access, TokenRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Expired(t *testing.T) {
	now := time.Now().UTC()
	c := testCodec(func() time.Time { return now })

	access, err := c.Issue(uuid.New(), "a@b.com", TokenAccess)
	require.NoError(t, err)

	// Move the clock past the access TTL; the signature is still correct.
	now = now.Add(31 * time.Minute)
	_, err = c.Verify(access, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Tampered(t *testing.T) {
	c := testCodec(nil)

	access, err := c.Issue(uuid.New(), "a@b.com", TokenAccess)
	require.NoError(t, err)

	parts := strings.Split(access, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	_, err = c.Verify(tampered, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_WrongSecret(t *testing.T) {
	c := testCodec(nil)
	other := NewCodec(CodecConfig{Secret: []byte("other-secret")})

	access, err := other.Issue(uuid.New(), "a@b.com", TokenAccess)
	require.NoError(t, err)

	_, err = c.Verify(access, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Malformed(t *testing.T) {
	c := testCodec(nil)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := c.Verify(raw, TokenAccess)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}
