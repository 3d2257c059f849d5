package domain

import "strings"

var taxIDPunctuation = strings.NewReplacer(".", "", "/", "", "-", "", " ", "")

// NormalizePayerTaxID strips the usual CNPJ/CPF punctuation.
func NormalizePayerTaxID(s string) string {
	return taxIDPunctuation.Replace(strings.TrimSpace(s))
}

// ValidPayerTaxID reports whether s is a CNPJ (14 digits) or CPF (11 digits)
// with matching check digits. Punctuation is ignored.
func ValidPayerTaxID(s string) bool {
	digits, ok := toDigits(NormalizePayerTaxID(s))
	if !ok {
		return false
	}
	switch len(digits) {
	case 14:
		return !repeated(digits) &&
			cnpjCheckDigit(digits[:12]) == digits[12] &&
			cnpjCheckDigit(digits[:13]) == digits[13]
	case 11:
		return !repeated(digits) &&
			cpfCheckDigit(digits[:9]) == digits[9] &&
			cpfCheckDigit(digits[:10]) == digits[10]
	}
	return false
}

func toDigits(s string) ([]int, bool) {
	if s == "" {
		return nil, false
	}
	out := make([]int, len(s))
	for i, r := range s {
		if r < '0' || r > '9' {
			return nil, false
		}
		out[i] = int(r - '0')
	}
	return out, true
}

func repeated(d []int) bool {
	for _, v := range d[1:] {
		if v != d[0] {
			return false
		}
	}
	return true
}

// cnpjCheckDigit uses weights 2..9 cycling from the rightmost digit.
func cnpjCheckDigit(d []int) int {
	sum, w := 0, 2
	for i := len(d) - 1; i >= 0; i-- {
		sum += d[i] * w
		w++
		if w > 9 {
			w = 2
		}
	}
	if r := sum % 11; r >= 2 {
		return 11 - r
	}
	return 0
}

func cpfCheckDigit(d []int) int {
	sum := 0
	for i, v := range d {
		sum += v * (len(d) + 1 - i)
	}
	if r := sum * 10 % 11; r != 10 {
		return r
	}
	return 0
}
