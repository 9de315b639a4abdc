package validation

import (
	"strings"

	"github.com/garelabs/gare-backend/internal/pkg/apperr"
)

// stripNonDigits keeps only ASCII digits.
func stripNonDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// mod11Digit is the shared check-digit rule: (sum*10) mod 11, folded
// to 0 when the remainder lands on 10.
func mod11Digit(sum int) int {
	d := (sum * 10) % 11
	if d == 10 {
		d = 0
	}
	return d
}

// CPF validates and normalizes an 11-digit individual tax id. It
// returns the bare digits on success. Uniform sequences (including the
// canonical all-zero one) are rejected outright; they pass the
// arithmetic but are reserved.
func CPF(raw string) (string, error) {
	cpf := stripNonDigits(raw)
	if len(cpf) != 11 {
		return "", apperr.Validation("cpf", "CPF deve ter 11 dígitos")
	}
	if allSameDigit(cpf) {
		return "", apperr.Checksum("cpf", "CPF inválido")
	}
	// First check digit: weights 10..2 over the first 9 digits.
	// Second: weights 11..2 over the first 10.
	for _, window := range []int{9, 10} {
		sum := 0
		for j := 0; j < window; j++ {
			sum += int(cpf[j]-'0') * (window + 1 - j)
		}
		if mod11Digit(sum) != int(cpf[window]-'0') {
			return "", apperr.Checksum("cpf", "CPF inválido")
		}
	}
	return cpf, nil
}

// cnpjWeights holds the cyclic weight table for the first check digit;
// the second prepends a 6 and shifts.
var cnpjWeights = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

// CNPJ validates and normalizes a 14-digit entity tax id.
func CNPJ(raw string) (string, error) {
	cnpj := stripNonDigits(raw)
	if len(cnpj) != 14 {
		return "", apperr.Validation("cnpj", "CNPJ deve ter 14 dígitos")
	}
	if allSameDigit(cnpj) {
		return "", apperr.Checksum("cnpj", "CNPJ inválido")
	}
	weights := cnpjWeights
	for _, window := range []int{12, 13} {
		sum := 0
		for j := 0; j < window; j++ {
			sum += int(cnpj[j]-'0') * weights[j]
		}
		if mod11Digit(sum) != int(cnpj[window]-'0') {
			return "", apperr.Checksum("cnpj", "CNPJ inválido")
		}
		weights = append([]int{6}, weights...)
	}
	return cnpj, nil
}

// TaxID normalizes a field that may carry either kind of tax id,
// dispatching on digit count. The empty string is not an error: it
// marks an unidentified holder and keeps natural-key upserts working.
func TaxID(raw string) (string, error) {
	digits := stripNonDigits(raw)
	switch len(digits) {
	case 0:
		return "", nil
	case 11:
		return CPF(digits)
	case 14:
		return CNPJ(digits)
	default:
		return "", apperr.Checksum("cpf_cnpj", "CPF/CNPJ deve ter 11 ou 14 dígitos")
	}
}

// FormatCPF renders bare digits as 000.000.000-00. Anything that is
// not 11 digits long comes back unchanged.
func FormatCPF(cpf string) string {
	cpf = stripNonDigits(cpf)
	if len(cpf) != 11 {
		return cpf
	}
	return cpf[:3] + "." + cpf[3:6] + "." + cpf[6:9] + "-" + cpf[9:]
}

// FormatCNPJ renders bare digits as 00.000.000/0000-00.
func FormatCNPJ(cnpj string) string {
	cnpj = stripNonDigits(cnpj)
	if len(cnpj) != 14 {
		return cnpj
	}
	return cnpj[:2] + "." + cnpj[2:5] + "." + cnpj[5:8] + "/" + cnpj[8:12] + "-" + cnpj[12:]
}
