package registration

import (
	"context"

	"github.com/jhoicas/tienda-b2b-api/internal/domain/taxid"
)

// TaxIDValidator decide la validez de un identificador fiscal (implementado por taxid.Validator).
type TaxIDValidator interface {
	Validate(ctx context.Context, countryCode, rawValue string) taxid.Verdict
}

// VerdictObserver recibe cada veredicto emitido (métricas). Puede ser nil.
type VerdictObserver interface {
	ObserveVerdict(v taxid.Verdict)
}
