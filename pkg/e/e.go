package e

import "fmt"

var (
	// Внутренние ошибки загрузки медиа
	ErrFetchTransient = fmt.Errorf("transient fetch failure")
	ErrFetchPermanent = fmt.Errorf("permanent fetch failure")

	// Внутренние ошибки векторизации
	ErrEncoding        = fmt.Errorf("encoding failed")
	ErrZeroVector      = fmt.Errorf("vector has zero norm")
	ErrVectorDimension = fmt.Errorf("unexpected vector dimension")
	ErrEmptyVectors    = fmt.Errorf("empty vectors")

	// Внутренние ошибки векторного хранилища
	ErrStoreConnection = fmt.Errorf("vector store unavailable")
	ErrStoreValidation = fmt.Errorf("vector store rejected request")
	ErrCollectionSetup = fmt.Errorf("collection setup failed")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 400 Bad Request
	ErrStatusBadRequest   = fmt.Errorf("bad request")
	ErrQueryRequired      = fmt.Errorf("either query or image_url is required")
	ErrAmbiguousQuery     = fmt.Errorf("query and image_url are mutually exclusive")
	ErrInvalidLimit       = fmt.Errorf("limit must be between 1 and 100")
	ErrInvalidPrice       = fmt.Errorf("invalid price value")
	ErrPricePrecision     = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidPriceRange  = fmt.Errorf("price min must not exceed max")
	ErrUnknownFilterField = fmt.Errorf("unknown filter field")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
