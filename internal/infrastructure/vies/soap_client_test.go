package vies_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-b2b-api/internal/domain/taxid"
	"github.com/jhoicas/tienda-b2b-api/internal/infrastructure/vies"
)

const okBody = `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>` +
	`<checkVatResponse xmlns="urn:ec.europa.eu:taxud:vies:services:checkVat:types">` +
	`<countryCode>DE</countryCode><vatNumber>123456789</vatNumber><valid>true</valid>` +
	`<name>ACME GmbH</name><address>Berlin</address></checkVatResponse></soap:Body></soap:Envelope>`

func TestBuildCheckVatEnvelope(t *testing.T) {
	payload, err := vies.BuildCheckVatEnvelope("DE", "123456789")
	require.NoError(t, err)

	body := string(payload)
	assert.Contains(t, body, `<soapenv:Envelope`)
	assert.Contains(t, body, `xmlns:urn="urn:ec.europa.eu:taxud:vies:services:checkVat:types"`)
	assert.Contains(t, body, `<urn:countryCode>DE</urn:countryCode>`)
	assert.Contains(t, body, `<urn:vatNumber>123456789</urn:vatNumber>`)
}

func TestCheck_EnviaEnvelopeYDevuelveCuerpo(t *testing.T) {
	var gotBody, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	client := vies.NewSOAPClient(srv.URL, time.Second)
	raw, err := client.Check(context.Background(), "DE", "123456789")
	require.NoError(t, err)
	assert.Equal(t, okBody, raw)
	assert.True(t, strings.HasPrefix(gotContentType, "text/xml"))
	assert.Contains(t, gotBody, "<urn:vatNumber>123456789</urn:vatNumber>")

	parsed, err := taxid.ParseRegistryResponse(raw)
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "ACME GmbH", parsed.Name)
}

func TestCheck_HTTPNo2xxEsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<soap:Fault><faultstring>MS_UNAVAILABLE</faultstring></soap:Fault>`))
	}))
	defer srv.Close()

	_, err := vies.NewSOAPClient(srv.URL, time.Second).Check(context.Background(), "DE", "123456789")
	assert.Error(t, err)
}

func TestCheck_TimeoutDelContexto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := vies.NewSOAPClient(srv.URL, 5*time.Second).Check(ctx, "DE", "123456789")
	assert.Error(t, err)
}

// Registro real detrás del validador: un 503 termina en REGISTRY_UNAVAILABLE.
func TestValidator_ConServidorCaido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	v := taxid.NewValidator(vies.NewSOAPClient(srv.URL, time.Second), time.Second)
	verdict := v.Validate(context.Background(), "DE", "123456789")
	assert.Equal(t, taxid.ReasonRegistryUnavailable, verdict.FailureReason)
}
