package cloud115

import (
	"regexp"
	"testing"
	"time"
)

var hexRe = regexp.MustCompile(`^[0-9a-f]+$`)

func TestGenerateNonce(t *testing.T) {
	// 秒部分 8 位 + 微秒部分 5 位 = 13
	nonce, err := generateNonce(time.Unix(1716000000, 123456000))
	if err != nil {
		t.Fatalf("generateNonce failed: %v", err)
	}
	if len(nonce) != 13 {
		t.Errorf("Expected 13 chars, got %d (%s)", len(nonce), nonce)
	}
	if !hexRe.MatchString(nonce) {
		t.Errorf("Nonce is not lowercase hex: %s", nonce)
	}

	// 不同时刻产生不同 nonce
	other, err := generateNonce(time.Unix(1716000001, 654321000))
	if err != nil {
		t.Fatalf("generateNonce failed: %v", err)
	}
	if other == nonce {
		t.Errorf("Nonces for different instants should differ")
	}
}

func TestGenerateNonce_Malformed(t *testing.T) {
	// 微秒数太小，十六进制凑不够 13 位，必须硬失败而不是继续用坏 nonce
	_, err := generateNonce(time.Unix(1716000000, 1000*1000))
	if err == nil {
		t.Fatal("Expected SignatureError for short nonce")
	}
	if _, ok := err.(*SignatureError); !ok {
		t.Errorf("Expected *SignatureError, got %T", err)
	}
}

func TestSsopw_Deterministic(t *testing.T) {
	creds := Credentials{Username: "alice@example.com", Password: "hunter2"}
	nonce := "66466d801e240"

	first := ssopw(creds, nonce)
	second := ssopw(creds, nonce)
	if first != second {
		t.Errorf("Same inputs must produce same signature: %s != %s", first, second)
	}
	if len(first) != 40 || !hexRe.MatchString(first) {
		t.Errorf("Signature should be a lowercase sha1 hex digest, got %s", first)
	}
}

func TestSsopw_Sensitivity(t *testing.T) {
	creds := Credentials{Username: "alice@example.com", Password: "hunter2"}
	nonce := "66466d801e240"
	base := ssopw(creds, nonce)

	if ssopw(Credentials{Username: "bob@example.com", Password: "hunter2"}, nonce) == base {
		t.Error("Changing username should change the signature")
	}
	if ssopw(Credentials{Username: "alice@example.com", Password: "hunter3"}, nonce) == base {
		t.Error("Changing password should change the signature")
	}
	if ssopw(creds, "66466d801e241") == base {
		t.Error("Changing nonce should change the signature")
	}
}

func TestLoginForm(t *testing.T) {
	creds := Credentials{Username: "alice@example.com", Password: "hunter2"}
	nonce := "66466d801e240"
	form := loginForm(creds, nonce)

	if form["login[ssoln]"] != creds.Username {
		t.Errorf("ssoln should carry the username, got %s", form["login[ssoln]"])
	}
	if form["login[ssoext]"] != nonce || form["login[ssovcode]"] != nonce {
		t.Error("ssoext and ssovcode should both carry the nonce")
	}
	if form["login[ssopw]"] != ssopw(creds, nonce) {
		t.Error("ssopw field mismatch")
	}
	if form["login[ssopw]"] == creds.Password {
		t.Error("Password must never appear in cleartext")
	}
	if form["login[ssoent]"] != "A1" || form["login[version]"] != "2.0" {
		t.Error("SSO protocol constants missing")
	}
}
