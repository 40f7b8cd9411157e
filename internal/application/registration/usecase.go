// Package registration orquesta el alta de clientes B2B a partir del veredicto fiscal y la
// revisión manual de los registros que quedan pendientes.
package registration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-b2b-api/internal/application/dto"
	"github.com/jhoicas/tienda-b2b-api/internal/domain"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/entity"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/repository"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/taxid"
	"github.com/jhoicas/tienda-b2b-api/pkg/logger"
	"github.com/jhoicas/tienda-b2b-api/pkg/vat"
)

// UseCase casos de uso de registro y revisión de clientes empresa.
type UseCase struct {
	repo      repository.BusinessCustomerRepository
	validator TaxIDValidator
	observer  VerdictObserver
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. observer y log pueden ser nil.
func NewUseCase(
	repo repository.BusinessCustomerRepository,
	validator TaxIDValidator,
	observer VerdictObserver,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		repo:      repo,
		validator: validator,
		observer:  observer,
		log:       log.Component("registration"),
		now:       time.Now,
	}
}

// ValidateTaxID precomprobación pública del identificador; no crea ningún registro.
func (uc *UseCase) ValidateTaxID(ctx context.Context, in dto.ValidateTaxIDRequest) (*dto.TaxIDVerdictResponse, error) {
	if strings.TrimSpace(in.CountryCode) == "" || strings.TrimSpace(in.TaxID) == "" {
		return nil, fmt.Errorf("%w: country_code y tax_id son obligatorios", domain.ErrInvalidInput)
	}
	v := uc.validate(ctx, in.CountryCode, in.TaxID)
	resp := toVerdictResponse(v)
	return &resp, nil
}

// Register da de alta un cliente empresa.
//
// Retorna:
//   - cliente approved si el veredicto es válido.
//   - cliente pending con ReviewReason si el registro VIES no respondió o rechazó el número.
//   - domain.ErrInvalidTaxID / domain.ErrUnsupportedJurisdiction sin crear registro.
//   - domain.ErrDuplicate si ya existe un cliente con el mismo (país, número).
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterCustomerRequest) (*dto.RegistrationResponse, error) {
	companyName := strings.TrimSpace(in.CompanyName)
	countryCode := taxid.CanonicalCountryCode(in.CountryCode)
	if companyName == "" || countryCode == "" || strings.TrimSpace(in.TaxID) == "" {
		return nil, fmt.Errorf("%w: company_name, country_code y tax_id son obligatorios", domain.ErrInvalidInput)
	}

	// Evita consultar VIES para un número ya registrado.
	if number := vat.Normalize(countryCode, in.TaxID); number != "" {
		existing, err := uc.repo.GetByTaxID(ctx, countryCode, number)
		if err != nil {
			return nil, fmt.Errorf("registro: buscar duplicado: %w", err)
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	v := uc.validate(ctx, countryCode, in.TaxID)

	status, reviewReason, err := decide(v)
	if err != nil {
		uc.log.Info().
			Str("country", v.CountryCode).
			Str("jurisdiction", string(v.Jurisdiction)).
			Str("reason", string(v.FailureReason)).
			Msg("registro rechazado por identificador fiscal")
		return nil, err
	}

	now := uc.now()
	customer := &entity.BusinessCustomer{
		ID:              uuid.New().String(),
		CompanyName:     companyName,
		CountryCode:     v.CountryCode,
		TaxID:           v.Number,
		Region:          regionFor(v.Jurisdiction),
		Status:          status,
		VIESValidated:   v.Valid && v.Jurisdiction == taxid.JurisdictionEU,
		VerifiedName:    v.VerifiedName,
		VerifiedAddress: v.VerifiedAddress,
		ReviewReason:    reviewReason,
		Email:           strings.TrimSpace(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("customer_id", customer.ID).
		Str("country", customer.CountryCode).
		Str("region", string(customer.Region)).
		Str("status", string(customer.Status)).
		Str("reason", string(v.FailureReason)).
		Msg("cliente empresa registrado")

	return &dto.RegistrationResponse{
		Customer: *toCustomerResponse(customer),
		Verdict:  toVerdictResponse(v),
	}, nil
}

// decide traduce el veredicto a estado inicial. Los fallos remotos van a revisión manual;
// los de formato o jurisdicción los corrige el usuario y no crean registro.
func decide(v taxid.Verdict) (entity.CustomerStatus, string, error) {
	if v.Valid {
		return entity.CustomerApproved, "", nil
	}
	switch v.FailureReason {
	case taxid.ReasonRegistryUnavailable:
		return entity.CustomerPending, string(v.FailureReason), nil
	case taxid.ReasonRegistryRejected:
		return entity.CustomerPending, string(v.FailureReason), nil
	case taxid.ReasonUnsupportedJurisdiction:
		return "", "", fmt.Errorf("%w: %s", domain.ErrUnsupportedJurisdiction, v.CountryCode)
	default:
		return "", "", fmt.Errorf("%w: %s", domain.ErrInvalidTaxID, v.CountryCode)
	}
}

func regionFor(j taxid.Jurisdiction) entity.Region {
	if j == taxid.JurisdictionDomestic {
		return entity.RegionPoland
	}
	return entity.RegionEU
}

// ListPending clientes a la espera de revisión manual, más antiguos primero.
func (uc *UseCase) ListPending(ctx context.Context, page dto.PageRequest) (*dto.BusinessCustomerListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByStatus(ctx, entity.CustomerPending, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BusinessCustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return &dto.BusinessCustomerListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Approve aprueba un cliente pendiente.
func (uc *UseCase) Approve(ctx context.Context, id string) (*dto.BusinessCustomerResponse, error) {
	return uc.review(ctx, id, entity.CustomerApproved)
}

// Reject rechaza un cliente pendiente.
func (uc *UseCase) Reject(ctx context.Context, id string) (*dto.BusinessCustomerResponse, error) {
	return uc.review(ctx, id, entity.CustomerRejected)
}

// review solo permite pending → approved | rejected.
func (uc *UseCase) review(ctx context.Context, id string, to entity.CustomerStatus) (*dto.BusinessCustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.Status != entity.CustomerPending {
		return nil, fmt.Errorf("%w: estado actual %s", domain.ErrCustomerNotPending, customer.Status)
	}
	ok, err := uc.repo.TransitionStatus(ctx, id, entity.CustomerPending, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		// otro revisor se adelantó
		return nil, domain.ErrCustomerNotPending
	}
	customer.Status = to
	customer.UpdatedAt = uc.now()

	uc.log.Info().
		Str("customer_id", id).
		Str("status", string(to)).
		Str("review_reason", customer.ReviewReason).
		Msg("revisión manual aplicada")
	return toCustomerResponse(customer), nil
}

func (uc *UseCase) validate(ctx context.Context, countryCode, rawValue string) taxid.Verdict {
	v := uc.validator.Validate(ctx, countryCode, rawValue)
	if uc.observer != nil {
		uc.observer.ObserveVerdict(v)
	}
	if v.FailureReason == taxid.ReasonRegistryUnavailable {
		uc.log.Warn().Str("country", v.CountryCode).Str("detail", v.Detail).Msg("registro VIES no disponible")
	}
	return v
}

func toVerdictResponse(v taxid.Verdict) dto.TaxIDVerdictResponse {
	return dto.TaxIDVerdictResponse{
		Valid:           v.Valid,
		Jurisdiction:    string(v.Jurisdiction),
		CountryCode:     v.CountryCode,
		Number:          v.Number,
		VerifiedName:    v.VerifiedName,
		VerifiedAddress: v.VerifiedAddress,
		FailureReason:   string(v.FailureReason),
	}
}

func toCustomerResponse(c *entity.BusinessCustomer) *dto.BusinessCustomerResponse {
	return &dto.BusinessCustomerResponse{
		ID:              c.ID,
		CompanyName:     c.CompanyName,
		CountryCode:     c.CountryCode,
		TaxID:           c.TaxID,
		Region:          string(c.Region),
		Status:          string(c.Status),
		VIESValidated:   c.VIESValidated,
		VerifiedName:    c.VerifiedName,
		VerifiedAddress: c.VerifiedAddress,
		ReviewReason:    c.ReviewReason,
		Email:           c.Email,
		Phone:           c.Phone,
		CreatedAt:       c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// IsApproved indica si el cliente existe y está aprobado.
func (uc *UseCase) IsApproved(ctx context.Context, customerID string) (bool, error) {
	c, err := uc.repo.GetByID(ctx, customerID)
	if err != nil {
		return false, err
	}
	return c.IsApproved(), nil
}
