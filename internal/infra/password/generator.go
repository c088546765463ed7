// Package password generates random passwords and passphrases and scores password strength.
package password

import (
	"crypto/rand"
	"io"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"catalog/internal/domain/entity"
	"catalog/internal/domain/service"
	"catalog/internal/errors"
)

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
	special   = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	ambiguous = "0O1lI"

	MinLength       = 6
	MinStrongLength = 8
	MaxLength       = service.MaxPasswordBytes
	DefaultLength   = 16
	MinWords        = 3
	MaxWords        = 8
	DefaultWords    = 4
	MaxScore        = 7
)

var words = []string{
	"correct", "horse", "battery", "staple", "cloud", "server", "code",
	"gopher", "fast", "api", "secure", "login", "user", "admin", "token",
	"peace", "ocean", "river", "mountain", "forest", "sky", "star", "moon",
	"fire", "water", "earth", "wind", "stone", "metal", "glass", "wood",
	"night", "day", "sun", "shadow", "light", "dark", "bright", "cold",
	"warm", "cool", "hot", "fresh", "clean", "pure", "clear", "sharp",
	"quick", "slow", "steady", "calm", "brave", "smart", "wise", "kind",
}

// Generator implements service.PasswordGenerator on a cryptographic random source.
type Generator struct {
	random io.Reader
}

var _ service.PasswordGenerator = (*Generator)(nil)

// NewGenerator returns a generator backed by crypto/rand.
func NewGenerator() *Generator {
	return &Generator{random: rand.Reader}
}

// NewPasswordGenerator is the fx constructor.
func NewPasswordGenerator() service.PasswordGenerator {
	return NewGenerator()
}

// DefaultOptions mirrors the API defaults: 16 characters drawn from every class.
func DefaultOptions() entity.PasswordOptions {
	return entity.PasswordOptions{
		Length:    DefaultLength,
		Uppercase: true,
		Digits:    true,
		Special:   true,
	}
}

// Generate draws every character from the selected classes. Length is clamped to [MinLength, MaxLength].
func (g *Generator) Generate(opts entity.PasswordOptions) (string, error) {
	length := clamp(opts.Length, MinLength, MaxLength)

	charset := lowercase
	if opts.Uppercase {
		charset += uppercase
	}
	if opts.Digits {
		charset += digits
	}
	if opts.Special {
		charset += special
	}
	if opts.AvoidAmbiguous {
		charset = strings.Map(func(r rune) rune {
			if strings.ContainsRune(ambiguous, r) {
				return -1
			}

			return r
		}, charset)
	}

	out := make([]byte, length)
	for i := range out {
		c, err := g.pick(charset)
		if err != nil {
			return "", err
		}
		out[i] = c
	}

	return string(out), nil
}

// GenerateStrong guarantees one character of each class. Length is clamped to [MinStrongLength, MaxLength].
func (g *Generator) GenerateStrong(length int) (string, error) {
	length = clamp(length, MinStrongLength, MaxLength)

	out := make([]byte, 0, length)
	for _, class := range []string{lowercase, uppercase, digits, special} {
		c, err := g.pick(class)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	all := lowercase + uppercase + digits + special
	for len(out) < length {
		c, err := g.pick(all)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	// Fisher-Yates so the guaranteed characters are not always first.
	for i := len(out) - 1; i > 0; i-- {
		j, err := g.intn(i + 1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}

	return string(out), nil
}

// GeneratePassphrase joins random words and appends a two-digit number and a special character.
func (g *Generator) GeneratePassphrase(count int, separator string) (string, error) {
	count = clamp(count, MinWords, MaxWords)

	chosen := make([]string, count)
	for i := range chosen {
		idx, err := g.intn(len(words))
		if err != nil {
			return "", err
		}
		chosen[i] = words[idx]
	}

	number, err := g.intn(89)
	if err != nil {
		return "", err
	}
	symbol, err := g.pick(special)
	if err != nil {
		return "", err
	}

	return strings.Join(chosen, separator) + strconv.Itoa(number+10) + string(symbol), nil
}

// CheckStrength scores length and character variety out of MaxScore.
func (g *Generator) CheckStrength(password string) entity.PasswordStrength {
	length := utf8.RuneCountInString(password)
	score := 0
	var feedback []string

	if length >= 8 {
		score++
	} else {
		feedback = append(feedback, "Password should be at least 8 characters")
	}
	if length >= 12 {
		score++
	} else {
		feedback = append(feedback, "Longer passwords are more secure")
	}
	if length >= 16 {
		score++
	}

	checks := []struct {
		match func(r rune) bool
		hint  string
	}{
		{unicode.IsLower, "Add lowercase letters"},
		{unicode.IsUpper, "Add uppercase letters"},
		{unicode.IsDigit, "Add numbers"},
		{func(r rune) bool { return strings.ContainsRune(special, r) }, "Add special characters (!@#$%^&*)"},
	}
	for _, check := range checks {
		if strings.IndexFunc(password, check.match) >= 0 {
			score++
		} else {
			feedback = append(feedback, check.hint)
		}
	}

	if len(feedback) == 0 {
		feedback = []string{"Password looks good!"}
	}

	return entity.PasswordStrength{
		Strength: strengthLabel(score),
		Score:    score,
		MaxScore: MaxScore,
		Length:   length,
		Feedback: feedback,
	}
}

func strengthLabel(score int) string {
	switch {
	case score <= 2:
		return "Weak"
	case score <= 4:
		return "Medium"
	case score == 5:
		return "Strong"
	default:
		return "Very Strong"
	}
}

func (g *Generator) pick(charset string) (byte, error) {
	idx, err := g.intn(len(charset))
	if err != nil {
		return 0, err
	}

	return charset[idx], nil
}

func (g *Generator) intn(n int) (int, error) {
	v, err := rand.Int(g.random, big.NewInt(int64(n)))
	if err != nil {
		return 0, errors.Wrap(err, "read random source")
	}

	return int(v.Int64()), nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
