package password

import (
	"bytes"
	"strings"
	"testing"
	"unicode"

	"catalog/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	g := NewGenerator()

	tests := []struct {
		name       string
		opts       entity.PasswordOptions
		wantLength int
		forbidden  string
	}{
		{name: "defaults", opts: DefaultOptions(), wantLength: 16},
		{name: "clamped up", opts: entity.PasswordOptions{Length: 2}, wantLength: MinLength, forbidden: uppercase + digits + special},
		{name: "clamped down", opts: entity.PasswordOptions{Length: 500, Digits: true}, wantLength: MaxLength, forbidden: uppercase + special},
		{name: "no ambiguous", opts: entity.PasswordOptions{Length: 72, Uppercase: true, Digits: true, AvoidAmbiguous: true}, wantLength: 72, forbidden: ambiguous + special},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Generate(tt.opts)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLength)
			if tt.forbidden != "" {
				assert.False(t, strings.ContainsAny(got, tt.forbidden), "password %q contains forbidden characters", got)
			}
		})
	}
}

func TestGenerator_GenerateStrong(t *testing.T) {
	g := NewGenerator()

	for _, length := range []int{1, 8, 16, 100} {
		got, err := g.GenerateStrong(length)
		require.NoError(t, err)

		assert.Len(t, got, clamp(length, MinStrongLength, MaxLength))
		assert.True(t, strings.ContainsAny(got, lowercase))
		assert.True(t, strings.ContainsAny(got, uppercase))
		assert.True(t, strings.ContainsAny(got, digits))
		assert.True(t, strings.ContainsAny(got, special))
	}
}

func TestGenerator_GeneratePassphrase(t *testing.T) {
	g := NewGenerator()

	got, err := g.GeneratePassphrase(4, "-")
	require.NoError(t, err)

	parts := strings.Split(got, "-")
	require.Len(t, parts, 4)

	// The final word carries the two-digit number and a special character.
	last := parts[3]
	symbol := last[len(last)-1:]
	assert.Contains(t, special, symbol)
	number := last[len(last)-3 : len(last)-1]
	assert.True(t, unicode.IsDigit(rune(number[0])) && unicode.IsDigit(rune(number[1])))
	assert.Contains(t, words, last[:len(last)-3])

	tooMany, err := g.GeneratePassphrase(20, " ")
	require.NoError(t, err)
	assert.Len(t, strings.Split(tooMany, " "), MaxWords)
}

func TestGenerator_CheckStrength(t *testing.T) {
	g := NewGenerator()

	tests := []struct {
		password     string
		wantStrength string
		wantScore    int
		wantFeedback []string
	}{
		{
			password:     "abc",
			wantStrength: "Weak",
			wantScore:    1,
			wantFeedback: []string{
				"Password should be at least 8 characters",
				"Longer passwords are more secure",
				"Add uppercase letters",
				"Add numbers",
				"Add special characters (!@#$%^&*)",
			},
		},
		{
			password:     "password1",
			wantStrength: "Medium",
			wantScore:    3,
			wantFeedback: []string{"Longer passwords are more secure", "Add uppercase letters", "Add special characters (!@#$%^&*)"},
		},
		{
			password:     "Password1!",
			wantStrength: "Strong",
			wantScore:    5,
			wantFeedback: []string{"Longer passwords are more secure"},
		},
		{
			password:     "Password1!Password1!",
			wantStrength: "Very Strong",
			wantScore:    7,
			wantFeedback: []string{"Password looks good!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			got := g.CheckStrength(tt.password)
			assert.Equal(t, tt.wantStrength, got.Strength)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, MaxScore, got.MaxScore)
			assert.Equal(t, len(tt.password), got.Length)
			assert.Equal(t, tt.wantFeedback, got.Feedback)
		})
	}
}

func TestGenerator_RandomSourceFailure(t *testing.T) {
	g := &Generator{random: bytes.NewReader(nil)}

	_, err := g.Generate(DefaultOptions())
	assert.Error(t, err)
}
