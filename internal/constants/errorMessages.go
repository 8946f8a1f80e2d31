package constants

const (
	MsgInvalidPropertyID  = "Invalid property ID format"
	MsgPropertyNotFound   = "Property not found"
	MsgDuplicateProperty  = "A property with this name already exists"
	MsgInvalidRequestBody = "Invalid request body"
	MsgMethodNotAllowed   = "Method not allowed"
	MsgInternalError      = "Internal Server Error"
)
