package wallet

import (
	"testing"

	"github.com/kilimba/ledgerd/cryptoutil"
)

func TestWalletSignVerifiesAgainstItsOwnPublicKey(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	msg := cryptoutil.Hash([]byte("payload"))

	sig, err := w.Sign(msg[:])
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	parsed, err := cryptoutil.ParseSignature(sig)
	if err != nil {
		t.Fatalf("ParseSignature: %v", err)
	}
	pub, err := cryptoutil.ParsePubKey(w.PublicKey())
	if err != nil {
		t.Fatalf("ParsePubKey: %v", err)
	}
	if !cryptoutil.Verify(parsed, pub, msg[:]) {
		t.Fatal("signature produced by Wallet.Sign did not verify against its own public key")
	}
}

func TestWalletAddressDerivedFromPublicKey(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.Address() != cryptoutil.Address(w.PublicKey()) {
		t.Fatal("Wallet.Address() does not match cryptoutil.Address(PublicKey())")
	}
}

func TestWalletGobRoundTrip(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data, err := w.GobEncode()
	if err != nil {
		t.Fatalf("GobEncode: %v", err)
	}

	var restored Wallet
	if err := restored.GobDecode(data); err != nil {
		t.Fatalf("GobDecode: %v", err)
	}
	if restored.Address() != w.Address() {
		t.Fatalf("restored address = %s, want %s", restored.Address(), w.Address())
	}
}
