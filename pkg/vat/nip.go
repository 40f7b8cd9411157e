package vat

import "fmt"

// pesos del dígito de control del NIP (Numer Identyfikacji Podatkowej), aplicados a los
// 9 primeros dígitos de izquierda a derecha.
var nipWeights = [9]int{6, 5, 7, 2, 3, 4, 5, 6, 7}

const nipLength = 10

// ValidateNIP valida un NIP ya normalizado (10 dígitos, sin prefijo PL).
// El dígito de control es la suma ponderada módulo 11; un resto 10 nunca es válido.
func ValidateNIP(nip string) error {
	if len(nip) != nipLength {
		return fmt.Errorf("vat: NIP debe tener %d dígitos, se recibieron %d", nipLength, len(nip))
	}
	for _, r := range nip {
		if r < '0' || r > '9' {
			return fmt.Errorf("vat: NIP solo admite dígitos")
		}
	}
	expected, err := ComputeNIPCheckDigit(nip[:9])
	if err != nil {
		return err
	}
	if nip[9] != expected {
		return fmt.Errorf("vat: dígito de control del NIP inválido: esperado %c, recibido %c", expected, nip[9])
	}
	return nil
}

// ComputeNIPCheckDigit calcula el dígito de control para los 9 primeros dígitos del NIP.
// Retorna error cuando el resto es 10: esa combinación no puede emitirse.
func ComputeNIPCheckDigit(base string) (byte, error) {
	if len(base) != len(nipWeights) {
		return 0, fmt.Errorf("vat: se requieren %d dígitos para calcular el dígito de control, se recibieron %d", len(nipWeights), len(base))
	}
	var sum int
	for i := 0; i < len(nipWeights); i++ {
		d := base[i]
		if d < '0' || d > '9' {
			return 0, fmt.Errorf("vat: NIP solo admite dígitos")
		}
		sum += int(d-'0') * nipWeights[i]
	}
	remainder := sum % 11
	if remainder == 10 {
		return 0, fmt.Errorf("vat: la base %s no admite dígito de control (resto 10)", base)
	}
	return byte('0' + remainder), nil
}
