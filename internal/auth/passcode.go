package auth

import "golang.org/x/crypto/bcrypt"

// HashPasscode is used by tests and by the setup tooling that produces
// PASSCODE_HASH; the server itself only ever verifies.
func HashPasscode(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	return string(b), err
}

func VerifyPasscode(hash, passcode string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode))
}
