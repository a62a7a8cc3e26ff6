package keys

import "testing"

func TestSignVerifyRoundTrip(t *testing.T) {
	pk, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	digest := [32]byte{1, 2, 3, 4}

	sig, err := pk.Sign(digest)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if err := pk.Public().Verify(digest, sig); err != nil {
		t.Errorf("Verify failed for a valid signature: %v", err)
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	pk1, _ := GeneratePrivateKey()
	pk2, _ := GeneratePrivateKey()
	digest := [32]byte{9, 9, 9}

	sig, err := pk1.Sign(digest)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if err := pk2.Public().Verify(digest, sig); err == nil {
		t.Error("Verify accepted a signature produced by a different key")
	}
}

func TestVerifyRejectsTamperedDigest(t *testing.T) {
	pk, _ := GeneratePrivateKey()
	digest := [32]byte{1}
	sig, err := pk.Sign(digest)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tampered := [32]byte{2}
	if err := pk.Public().Verify(tampered, sig); err == nil {
		t.Error("Verify accepted a signature against a different digest")
	}
}

func TestAddressRoundTrip(t *testing.T) {
	pk, _ := GeneratePrivateKey()
	addr, err := pk.Public().Address()
	if err != nil {
		t.Fatalf("Address: %v", err)
	}

	pub, err := PublicKeyFromAddress(addr)
	if err != nil {
		t.Fatalf("PublicKeyFromAddress: %v", err)
	}

	digest := [32]byte{7}
	sig, _ := pk.Sign(digest)
	if err := pub.Verify(digest, sig); err != nil {
		t.Errorf("round-tripped public key failed to verify: %v", err)
	}
}

func TestPublicKeyFromAddressRejectsGarbage(t *testing.T) {
	if _, err := PublicKeyFromAddress("not hex!"); err == nil {
		t.Error("expected an error for non-hex address")
	}
	if _, err := PublicKeyFromAddress("deadbeef"); err == nil {
		t.Error("expected an error for hex that isn't a DER public key")
	}
}
