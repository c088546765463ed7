package entity

// PasswordStrength is the result of scoring a password.
type PasswordStrength struct {
	Strength string
	Score    int
	MaxScore int
	Length   int
	Feedback []string
}

// PasswordOptions controls random password generation.
type PasswordOptions struct {
	Length         int
	Uppercase      bool
	Digits         bool
	Special        bool
	AvoidAmbiguous bool
}
