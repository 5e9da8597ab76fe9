package crypto

import "golang.org/x/crypto/bcrypt"

// HashPassword converts a plaintext password to a one-way bcrypt hash. The
// plaintext is never persisted anywhere.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

func ComparePassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
