package state

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer descompone y elimina marcas diacríticas para búsqueda
// insensible a acentos (las descripciones mezclan tamil y latín). El
// transformador guarda estado interno, así que se construye por llamada.
func foldTransformer() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// fold normaliza un texto para comparación: minúsculas y sin diacríticos.
func fold(s string) string {
	lower := strings.ToLower(s)
	out, _, err := transform.String(foldTransformer(), lower)
	if err != nil {
		return lower
	}
	return out
}

// matchesQuery búsqueda de subcadena plegada sobre varios campos.
func matchesQuery(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := fold(query)
	for _, f := range fields {
		if strings.Contains(fold(f), q) {
			return true
		}
	}
	return false
}
