package service

import "catalog/internal/domain/entity"

// PasswordGenerator produces random passwords and passphrases and rates password strength.
type PasswordGenerator interface {
	Generate(opts entity.PasswordOptions) (string, error)
	GenerateStrong(length int) (string, error)
	GeneratePassphrase(words int, separator string) (string, error)
	CheckStrength(password string) entity.PasswordStrength
}
