package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash se compara cuando el email no existe, así el login tarda lo mismo en ambos casos.
var dummyHash = sync.OnceValue(func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte("sin-usuario"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
})

var checkPassword = CheckPassword

// HashPassword genera el hash bcrypt de password con el costo indicado
// (bcrypt.DefaultCost si cost es 0).
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compara password con hash. Cualquier error (hash corrupto incluido) es un rechazo.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
