package validation

import (
	"sort"
	"strings"

	"github.com/garelabs/gare-backend/internal/pkg/apperr"
)

// caseCodePrefixes is the fixed GOA taxonomy: every case code starts
// with one of these 6-letter prefixes. The set is part of the external
// data format and must not drift.
var caseCodePrefixes = map[string]string{
	"GOAINV": "Investigação",
	"GOADEN": "Denúncia",
	"GOACIV": "Processo Civil",
	"GOACRI": "Processo Criminal",
	"GOAADM": "Administrativo",
	"GOAJUD": "Judicial",
	"GOAEXT": "Extrajudicial",
	"GOATRI": "Tributário",
	"GOATRA": "Trabalhista",
	"GOAFAM": "Família",
	"GOACOM": "Comercial",
	"GOAIMO": "Imobiliário",
	"GOACON": "Consumidor",
	"GOAENV": "Ambiental",
	"GOACOR": "Corporativo",
	"GOASEG": "Seguros",
	"GOAPRE": "Previdenciário",
	"GOAMED": "Médico",
	"GOAEDU": "Educacional",
	"GOATEC": "Tecnologia",
	"GOAALT": "Outros",
}

// CaseCodeInfo is the parsed form of a valid case code.
type CaseCodeInfo struct {
	Normalized string
	Prefix     string
	Sequence   string
	Label      string
}

func sortedCaseCodePrefixes() []string {
	out := make([]string, 0, len(caseCodePrefixes))
	for p := range caseCodePrefixes {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// CaseCode validates a structured GOA reference: uppercased, 8 to 100
// characters, a known 6-letter prefix and a positive all-digit
// sequence.
func CaseCode(raw string) (CaseCodeInfo, error) {
	goa := strings.ToUpper(strings.TrimSpace(raw))
	if len(goa) < 8 || len(goa) > 100 {
		return CaseCodeInfo{}, apperr.Validation("goa", "GOA deve ter entre 8 e 100 caracteres")
	}
	prefix := goa[:6]
	sequence := goa[6:]
	label, ok := caseCodePrefixes[prefix]
	if !ok {
		return CaseCodeInfo{}, apperr.Validation("goa",
			"Prefixo inválido. Use: "+strings.Join(sortedCaseCodePrefixes(), ", "))
	}
	positive := false
	for i := 0; i < len(sequence); i++ {
		c := sequence[i]
		if c < '0' || c > '9' {
			return CaseCodeInfo{}, apperr.Validation("goa", "Parte numérica do GOA deve conter apenas dígitos")
		}
		if c != '0' {
			positive = true
		}
	}
	if !positive {
		return CaseCodeInfo{}, apperr.Validation("goa", "Número do GOA deve ser positivo")
	}
	return CaseCodeInfo{
		Normalized: goa,
		Prefix:     prefix,
		Sequence:   sequence,
		Label:      label,
	}, nil
}

// CaseCodeLabel resolves a prefix to its human label, or "" when the
// prefix is unknown.
func CaseCodeLabel(prefix string) string {
	return caseCodePrefixes[strings.ToUpper(prefix)]
}
