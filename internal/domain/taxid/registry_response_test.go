package taxid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-b2b-api/internal/domain/taxid"
)

const viesValidResponse = `<?xml version="1.0" encoding="UTF-8"?>
<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/">
  <env:Header/>
  <env:Body>
    <ns2:checkVatResponse xmlns:ns2="urn:ec.europa.eu:taxud:vies:services:checkVat:types">
      <ns2:countryCode>DE</ns2:countryCode>
      <ns2:vatNumber>123456789</ns2:vatNumber>
      <ns2:requestDate>2026-10-15+02:00</ns2:requestDate>
      <ns2:valid>true</ns2:valid>
      <ns2:name>Müller &amp; Söhne GmbH</ns2:name>
      <ns2:address>Hauptstraße 1
10115 Berlin</ns2:address>
    </ns2:checkVatResponse>
  </env:Body>
</env:Envelope>`

const viesInvalidResponse = `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>` +
	`<checkVatResponse xmlns="urn:ec.europa.eu:taxud:vies:services:checkVat:types">` +
	`<countryCode>DE</countryCode><vatNumber>123456789</vatNumber><requestDate>2026-10-15+02:00</requestDate>` +
	`<valid>false</valid><name>---</name><address>---</address></checkVatResponse></soap:Body></soap:Envelope>`

const viesFaultResponse = `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>` +
	`<soap:Fault><faultcode>soap:Server</faultcode><faultstring>MS_UNAVAILABLE</faultstring></soap:Fault>` +
	`</soap:Body></soap:Envelope>`

func TestParseRegistryResponse_ValidoConNombreYDireccion(t *testing.T) {
	resp, err := taxid.ParseRegistryResponse(viesValidResponse)
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, "Müller & Söhne GmbH", resp.Name)
	assert.Equal(t, "Hauptstraße 1 10115 Berlin", resp.Address)
}

func TestParseRegistryResponse_InvalidoSinDatos(t *testing.T) {
	resp, err := taxid.ParseRegistryResponse(viesInvalidResponse)
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Empty(t, resp.Name)
	assert.Empty(t, resp.Address)
}

func TestParseRegistryResponse_GuionesComoDatoAusente(t *testing.T) {
	body := `<checkVatResponse><valid>true</valid><name>---</name><address/></checkVatResponse>`
	resp, err := taxid.ParseRegistryResponse(body)
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Name)
	assert.Empty(t, resp.Address)
}

func TestParseRegistryResponse_Fault(t *testing.T) {
	_, err := taxid.ParseRegistryResponse(viesFaultResponse)
	assert.ErrorIs(t, err, taxid.ErrRegistryFault)
}

func TestParseRegistryResponse_NoInterpretable(t *testing.T) {
	for _, body := range []string{
		"",
		"   ",
		"<html><body>502 Bad Gateway</body></html>",
		"<checkVatResponse><valid>maybe</valid></checkVatResponse>",
		"texto plano sin xml",
	} {
		_, err := taxid.ParseRegistryResponse(body)
		assert.ErrorIs(t, err, taxid.ErrUnparseableResponse, "cuerpo %q", body)
	}
}

// Un XML truncado no se puede canonicalizar; los patrones se aplican sobre el texto original.
func TestParseRegistryResponse_XMLTruncado(t *testing.T) {
	resp, err := taxid.ParseRegistryResponse(`<a:checkVatResponse><a:valid>true</a:valid><a:name>ACME SA</a:name>`)
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, "ACME SA", resp.Name)
}
