package usecase

// DomainError é erro de negócio (validação, conflito, não encontrado).
// O handler decide o status HTTP pelo Code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError é falha de infraestrutura (banco, fila). O core não
// retenta: propaga e o chamador decide a política de retry.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeDuplicateLeadID  = "DUPLICATE_LEAD_ID"
	CodeDuplicateEmail   = "DUPLICATE_EMAIL"
	CodeLeadNotFound     = "LEAD_NOT_FOUND"
	CodeCampaignNotFound = "CAMPAIGN_NOT_FOUND"
	CodeDatabase         = "DATABASE_ERROR"
)
