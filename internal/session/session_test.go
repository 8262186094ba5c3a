package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/schooluniforms-web/internal/api"
	"github.com/01moynul/schooluniforms-web/internal/models"
)

type fakeGateway struct {
	token      string
	user       *models.User
	profileErr error
	profiles   int
}

func (f *fakeGateway) Login(_ context.Context, creds models.Credentials) (*models.TokenPair, error) {
	if creds.Password != "secret" {
		return nil, &api.Error{StatusCode: 400, Message: "No active account found with the given credentials"}
	}
	return &models.TokenPair{Access: f.token, Refresh: "refresh"}, nil
}

func (f *fakeGateway) Profile(context.Context) (*models.User, error) {
	f.profiles++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.user, nil
}

func accessToken(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 5,
		"exp":     exp.Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func TestLoginResolvesRole(t *testing.T) {
	cases := []struct {
		name string
		user models.User
		hint string
		want string
	}{
		{"server role wins", models.User{Role: models.RoleDelivery, IsStaff: true}, models.RoleTailor, models.RoleDelivery},
		{"staff is admin", models.User{IsStaff: true}, models.RoleTailor, models.RoleAdmin},
		{"login screen hint", models.User{}, models.RoleTailor, models.RoleTailor},
		{"customer by default", models.User{}, "", models.RoleCustomer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user := tc.user
			gw := &fakeGateway{token: accessToken(t, time.Now().Add(time.Hour)), user: &user}
			s := New(gw, &api.MemoryTokens{})

			id, err := s.Login(context.Background(), models.Credentials{Username: "u", Password: "secret"}, tc.hint)
			require.NoError(t, err)
			assert.Equal(t, tc.want, id.Role)
			assert.True(t, s.Authenticated())
			assert.True(t, s.HasRole(tc.want))
		})
	}
}

func TestLoginFailureKeepsVisitorSignedOut(t *testing.T) {
	tokens := &api.MemoryTokens{}
	s := New(&fakeGateway{token: "x"}, tokens)

	_, err := s.Login(context.Background(), models.Credentials{Username: "u", Password: "wrong"}, "")
	require.Error(t, err)
	assert.Equal(t, "No active account found with the given credentials", api.Message(err, ""))
	assert.False(t, s.Authenticated())
	assert.Empty(t, tokens.Token())
}

func TestInitWithoutTokenSkipsProfile(t *testing.T) {
	gw := &fakeGateway{}
	s := New(gw, &api.MemoryTokens{})
	require.NoError(t, s.Init(context.Background()))
	assert.False(t, s.Authenticated())
	assert.Zero(t, gw.profiles)
}

func TestInitDiscardsExpiredToken(t *testing.T) {
	tokens := &api.MemoryTokens{}
	require.NoError(t, tokens.SetToken(accessToken(t, time.Now().Add(-time.Minute))))
	gw := &fakeGateway{user: &models.User{ID: 5}}

	s := New(gw, tokens)
	require.NoError(t, s.Init(context.Background()))
	assert.False(t, s.Authenticated())
	assert.Empty(t, tokens.Token())
	assert.Zero(t, gw.profiles)
}

func TestInitRestoresIdentity(t *testing.T) {
	tokens := &api.MemoryTokens{}
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, tokens.SetToken(accessToken(t, exp)))

	s := New(&fakeGateway{user: &models.User{ID: 5, Username: "mwila"}}, tokens)
	require.NoError(t, s.Init(context.Background()))

	id := s.Current()
	require.NotNil(t, id)
	assert.Equal(t, "mwila", id.User.Username)
	assert.Equal(t, models.RoleCustomer, id.Role)
	assert.True(t, exp.Equal(id.ExpiresAt))
}

func TestUnauthorizedProfileClearsSession(t *testing.T) {
	tokens := &api.MemoryTokens{}
	require.NoError(t, tokens.SetToken(accessToken(t, time.Now().Add(time.Hour))))
	gw := &fakeGateway{profileErr: &api.Error{StatusCode: 401, Message: "token not valid"}}

	s := New(gw, tokens)
	err := s.Init(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.Current())
	assert.Empty(t, tokens.Token())
}

func TestHandleUnauthorizedAfterLogin(t *testing.T) {
	tokens := &api.MemoryTokens{}
	gw := &fakeGateway{token: accessToken(t, time.Now().Add(time.Hour)), user: &models.User{ID: 5}}
	s := New(gw, tokens)
	_, err := s.Login(context.Background(), models.Credentials{Username: "u", Password: "secret"}, "")
	require.NoError(t, err)

	s.HandleUnauthorized()
	assert.False(t, s.Authenticated())
	assert.Empty(t, tokens.Token())
}

func TestLogoutAndClose(t *testing.T) {
	tokens := &api.MemoryTokens{}
	gw := &fakeGateway{token: accessToken(t, time.Now().Add(time.Hour)), user: &models.User{ID: 5}}
	s := New(gw, tokens)
	_, err := s.Login(context.Background(), models.Credentials{Username: "u", Password: "secret"}, "")
	require.NoError(t, err)

	s.Close()
	assert.False(t, s.Authenticated())
	assert.NotEmpty(t, tokens.Token(), "closing keeps the saved token")

	require.NoError(t, s.Logout())
	assert.Empty(t, tokens.Token())
}
