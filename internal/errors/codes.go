package errors

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL. Frontends map these codes to messages.

const (
	// ==================== Tenant (TENANT_) ====================
	TenantMissing = "TENANT_MISSING" // X-Tenant-ID header absent
	TenantInvalid = "TENANT_INVALID" // header present but not a valid UUID

	// ==================== Feature gate (FEATURE_) ====================
	FeatureNotEnabled = "FEATURE_NOT_ENABLED" // feature disabled for tenant

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"

	// ==================== Schema (SECTION_/FIELD_) ====================
	SectionNotFound   = "SECTION_NOT_FOUND"
	SectionNotDeleted = "SECTION_NOT_DELETED" // missing or still owns fields
	FieldNotFound     = "FIELD_NOT_FOUND"

	// ==================== Dealers (DEALER_) ====================
	DealerNotFound = "DEALER_NOT_FOUND"

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound      = "PRODUCT_NOT_FOUND"
	ProductNoValidFields = "PRODUCT_NO_VALID_FIELDS" // no dealer-visible field survived

	// ==================== Filters (FILTER_) ====================
	FilterNotFound      = "FILTER_NOT_FOUND"
	FilterInvalidValues = "FILTER_INVALID_VALUES" // type rule violated
	FilterInvalidType   = "FILTER_INVALID_TYPE"
	FilterInvalidStatus = "FILTER_INVALID_STATUS"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
