// Package vies implementa el puerto taxid.RegistryClient contra el servicio SOAP checkVat de VIES.
package vies

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/tienda-b2b-api/internal/domain/taxid"
)

// ── Constantes ────────────────────────────────────────────────────────────────

const (
	// DefaultURL endpoint público del servicio checkVat.
	DefaultURL = "https://ec.europa.eu/taxation_customs/vies/services/checkVatService"

	soapNS     = "http://schemas.xmlsoap.org/soap/envelope/"
	checkVatNS = "urn:ec.europa.eu:taxud:vies:services:checkVat:types"

	maxResponseBytes = 1 << 20 // 1 MB
)

var _ taxid.RegistryClient = (*SOAPClient)(nil)

// ── Implementación SOAP ────────────────────────────────────────────────────────

// SOAPClient cliente HTTP del servicio checkVat. Devuelve el cuerpo en texto; la
// interpretación es responsabilidad de taxid.ParseRegistryResponse.
type SOAPClient struct {
	httpClient *http.Client
	url        string
}

// NewSOAPClient construye el cliente. timeout acota la llamada completa además del
// contexto que recibe Check.
func NewSOAPClient(url string, timeout time.Duration) *SOAPClient {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = taxid.DefaultRegistryTimeout
	}
	return &SOAPClient{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

// Check envía la petición checkVat. Cualquier respuesta que no sea 2xx es un error:
// VIES responde los SOAP Fault (MS_UNAVAILABLE, TIMEOUT, ...) con HTTP 500.
func (c *SOAPClient) Check(ctx context.Context, countryCode, number string) (string, error) {
	payload, err := BuildCheckVatEnvelope(countryCode, number)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("vies: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("vies: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("vies: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("vies: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("vies: HTTP %d", resp.StatusCode)
	}
	return string(rawBody), nil
}

// BuildCheckVatEnvelope arma el envelope SOAP con el prefijo de país VIES y el número limpio.
func BuildCheckVatEnvelope(countryCode, number string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement("soapenv:Envelope")
	env.CreateAttr("xmlns:soapenv", soapNS)
	env.CreateAttr("xmlns:urn", checkVatNS)
	env.CreateElement("soapenv:Header")

	check := env.CreateElement("soapenv:Body").CreateElement("urn:checkVat")
	check.CreateElement("urn:countryCode").SetText(countryCode)
	check.CreateElement("urn:vatNumber").SetText(number)

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("vies: serializar envelope: %w", err)
	}
	return out, nil
}
