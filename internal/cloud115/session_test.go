package cloud115

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogin_Success(t *testing.T) {
	f := &fake115{loginBody: `{"state":true,"data":{"USER_ID":"42","USER_NAME":"alice"}}`}
	srv := f.server()
	defer srv.Close()

	c := newTestClient(srv)
	session, err := c.Login("alice", "hunter2")
	assert.NoError(t, err)
	assert.Equal(t, "42", session.UserID)
	assert.Equal(t, "alice", session.Profile["USER_NAME"])
	assert.Same(t, session, c.Session())
}

func TestLogin_NumericUserID(t *testing.T) {
	f := &fake115{loginBody: `{"state":true,"data":{"USER_ID":42}}`}
	srv := f.server()
	defer srv.Close()

	c := newTestClient(srv)
	session, err := c.Login("alice", "hunter2")
	assert.NoError(t, err)
	assert.Equal(t, "42", session.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := &fake115{loginBody: `{"state":false,"err_name":"passwd"}`}
	srv := f.server()
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.Login("alice", "wrong")
	var ae *AuthError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, AuthWrongPassword, ae.Reason)
	assert.Nil(t, c.Session(), "failed login must not bind a session")
}

func TestLogin_AccountNotFound(t *testing.T) {
	f := &fake115{loginBody: `{"state":false,"err_name":"account"}`}
	srv := f.server()
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.Login("nobody", "hunter2")
	var ae *AuthError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, AuthAccountNotFound, ae.Reason)
}

func TestLogin_UnknownRejection(t *testing.T) {
	f := &fake115{loginBody: `{"state":false}`}
	srv := f.server()
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.Login("alice", "hunter2")
	var ae *AuthError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, AuthUnknown, ae.Reason)
}

func TestLogin_MissingUserID(t *testing.T) {
	f := &fake115{loginBody: `{"state":true,"data":{"USER_NAME":"alice"}}`}
	srv := f.server()
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.Login("alice", "hunter2")
	var pe *ProtocolError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, "USER_ID", pe.Field)
}

func TestHasLoggedIn_CheckpointInversion(t *testing.T) {
	// checkpoint 返回 state=false 才代表仍在登录态
	f := &fake115{
		loginBody:      `{"state":true,"data":{"USER_ID":"42"}}`,
		checkpointBody: `{"state":false}`,
	}
	srv := f.server()
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.Login("alice", "hunter2")
	assert.NoError(t, err)
	assert.True(t, c.HasLoggedIn())

	f.checkpointBody = `{"state":true}`
	assert.False(t, c.HasLoggedIn())

	f.checkpointBody = `not json at all`
	assert.False(t, c.HasLoggedIn())
}

func TestHasLoggedIn_NoSession(t *testing.T) {
	f := &fake115{checkpointBody: `{"state":false}`}
	srv := f.server()
	defer srv.Close()

	c := newTestClient(srv)
	assert.False(t, c.HasLoggedIn())
	assert.Equal(t, 0, f.checkpointCalls, "no network call without a user id")
}

func TestLogout_KeepsLocalState(t *testing.T) {
	f := &fake115{loginBody: `{"state":true,"data":{"USER_ID":"42"}}`}
	srv := f.server()
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.Login("alice", "hunter2")
	assert.NoError(t, err)
	assert.NoError(t, c.Logout())
	assert.NotNil(t, c.Session(), "logout is fire-and-forget, caller discards the client")
}
