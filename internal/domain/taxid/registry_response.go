package taxid

import (
	"bytes"
	"encoding/xml"
	"errors"
	"html"
	"regexp"
	"strings"

	"github.com/ucarion/c14n"
)

// ErrUnparseableResponse la respuesta del registro no contiene un indicador de validez reconocible.
var ErrUnparseableResponse = errors.New("taxid: respuesta del registro no interpretable")

// ErrRegistryFault el registro respondió con un SOAP Fault (servicio caído, saturado, etc.).
var ErrRegistryFault = errors.New("taxid: el registro devolvió un fault")

// RegistryResponse datos extraídos de la respuesta de texto del registro.
type RegistryResponse struct {
	Valid   bool
	Name    string
	Address string
}

// La respuesta se lee con expresiones tolerantes al prefijo de namespace (ns2:valid, valid, ...).
var (
	faultPattern   = regexp.MustCompile(`<(?:[\w.-]+:)?Fault[\s>/]`)
	validPattern   = regexp.MustCompile(`<(?:[\w.-]+:)?valid(?:\s[^>]*)?>\s*(true|false)\s*</(?:[\w.-]+:)?valid>`)
	namePattern    = regexp.MustCompile(`(?s)<(?:[\w.-]+:)?(?:traderName|name)(?:\s[^>]*)?>(.*?)</(?:[\w.-]+:)?(?:traderName|name)>`)
	addressPattern = regexp.MustCompile(`(?s)<(?:[\w.-]+:)?(?:traderAddress|address)(?:\s[^>]*)?>(.*?)</(?:[\w.-]+:)?(?:traderAddress|address)>`)
	spacesPattern  = regexp.MustCompile(`\s+`)
)

// ParseRegistryResponse interpreta la respuesta checkVat del registro.
// Función pura: no hace I/O, toda la fragilidad del formato queda aquí.
// Si el texto es XML bien formado se canonicaliza antes (los elementos vacíos <name/> pasan a
// <name></name>); si no lo es, se buscan los patrones sobre el texto original.
func ParseRegistryResponse(raw string) (*RegistryResponse, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrUnparseableResponse
	}
	text := canonicalText(raw)

	if faultPattern.MatchString(text) {
		return nil, ErrRegistryFault
	}
	m := validPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, ErrUnparseableResponse
	}
	out := &RegistryResponse{Valid: m[1] == "true"}
	if out.Valid {
		out.Name = extractField(namePattern, text)
		out.Address = extractField(addressPattern, text)
	}
	return out, nil
}

func canonicalText(raw string) string {
	dec := xml.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.Entity = map[string]string{}
	canon, err := c14n.Canonicalize(dec)
	if err != nil || len(canon) == 0 {
		return raw
	}
	return string(canon)
}

// extractField devuelve el contenido del primer elemento que coincide; VIES usa "---"
// cuando el estado miembro no publica el dato.
func extractField(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	v := html.UnescapeString(m[1])
	v = strings.TrimSpace(spacesPattern.ReplaceAllString(v, " "))
	if v == "---" {
		return ""
	}
	return v
}
