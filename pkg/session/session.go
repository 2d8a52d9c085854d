package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errores de verificación. Expirado se distingue de firma/formato inválido
// porque el caller decide si pedir re-login o tratar el token como hostil.
var (
	ErrExpired = errors.New("session: token expirado")
	ErrInvalid = errors.New("session: token inválido")
)

// Claims incluye los claims estándar JWT más los campos propios de la sesión.
// Role y Permissions viajan en el token para que el middleware autorice sin
// consultar la DB; BusinessID es vacío en sesiones del panel de administración.
type Claims struct {
	jwt.RegisteredClaims
	SubjectID   string   `json:"subject_id"`
	BusinessID  string   `json:"business_id,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
}

// Generate genera un token de sesión firmado (HS256) con expiración.
func Generate(secret, subjectID, businessID, role string, permissions []string, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("session: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		SubjectID:   subjectID,
		BusinessID:  businessID,
		Role:        role,
		Permissions: permissions,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración contra el reloj real y devuelve los claims.
// Solo verifica el token: NO consulta estado actual en DB (una cuenta revocada
// sigue "válida" hasta expirar salvo que el caller haga el chequeo de revocación).
func Parse(secret, tokenString string) (*Claims, error) {
	return ParseAt(secret, tokenString, time.Now)
}

// ParseAt valida el token con un reloj inyectado (para simular expiración en tests).
// Retorna ErrExpired si el token venció y ErrInvalid para firma incorrecta,
// método de firma inesperado o formato corrupto.
func ParseAt(secret, tokenString string, now func() time.Time) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("session: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}
