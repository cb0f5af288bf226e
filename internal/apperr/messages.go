package apperr

// Literal messages shared between services and handlers.
const (
	MsgSignupFieldsRequired = "Username, email and password are required"
	MsgPasswordTooShort     = "Password must be at least 6 characters long"
	MsgInvalidRole          = `Role must be either "admin" or "user"`
	MsgUsernameTaken        = "Username is already taken"
	MsgEmailTaken           = "Email already registered"
	MsgInvalidCredentials   = "Invalid credentials"
	MsgUserNotFound         = "User not found"
	MsgNoToken              = "Unauthorized - No Token Provided"
	MsgInvalidToken         = "Unauthorized - Invalid Token"

	MsgProductNotFound     = "Product not found"
	MsgProductNameRequired = "Product name is required"
	MsgInvalidCategory     = "Category must be one of electronics, clothing, food, books, other"
	MsgQuantityRequired    = "Quantity is required"
	MsgQuantityNegative    = "Quantity cannot be negative"
	MsgQuantityNotNumber   = "Quantity must be a whole number"
	MsgQuantityTooLarge    = "Quantity is too large"
	MsgPriceRequired       = "Price is required"
	MsgPriceNegative       = "Price cannot be negative"
	MsgPriceNotNumber      = "Price must be a number"
	MsgTotalTooLarge       = "Total value is too large"

	MsgPromptRequired = "Valid prompt is required"
	MsgAIUnavailable  = "AI service temporarily unavailable"
	MsgAIQuota        = "AI service quota exceeded"
	MsgAIConfig       = "AI service configuration error"
	MsgAIFailed       = "Failed to process query with AI service"

	MsgInvalidBody = "Invalid request body"
	MsgInternal    = "Internal Server Error"
)
