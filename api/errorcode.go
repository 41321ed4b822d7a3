package api

import "github.com/helpmap/helpmap-api/store"

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1000: "invalid credentials",
		1001: "invalid authorization format",
		1003: "invalid token",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1100: store.ErrEmailTaken.Error(),
		1101: store.ErrUserNotFound.Error(),
		1102: store.ErrNoPublicKey.Error(),

		1200: store.ErrRequestNotFound.Error(),
		1201: store.ErrRequestNotOpen.Error(),
		1202: store.ErrRequestNotInProgress.Error(),
		1203: store.ErrNoHelperAssigned.Error(),
		1204: store.ErrNotRequestAuthor.Error(),
		1205: store.ErrNotRequestMember.Error(),
		1206: store.ErrInsufficientPoints.Error(),

		1300: store.ErrChatNotFound.Error(),
		1301: store.ErrNotChatParticipant.Error(),
		1302: store.ErrChatNotLinked.Error(),
		1303: store.ErrTooFewParticipants.Error(),

		1400: store.ErrOfferNotFound.Error(),
		1401: store.ErrOfferNotPending.Error(),
	}

	errorInternalServer             = errorJSON(999)
	errorInvalidCredentials         = errorJSON(1000)
	errorInvalidAuthorizationFormat = errorJSON(1001)
	errorInvalidToken               = errorJSON(1003)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorEmailTaken   = errorJSON(1100)
	errorUserNotFound = errorJSON(1101)
	errorNoPublicKey  = errorJSON(1102)

	errorRequestNotFound      = errorJSON(1200)
	errorRequestNotOpen       = errorJSON(1201)
	errorRequestNotInProgress = errorJSON(1202)
	errorNoHelperAssigned     = errorJSON(1203)
	errorNotRequestAuthor     = errorJSON(1204)
	errorNotRequestMember     = errorJSON(1205)
	errorInsufficientPoints   = errorJSON(1206)

	errorChatNotFound       = errorJSON(1300)
	errorNotChatParticipant = errorJSON(1301)
	errorChatNotLinked      = errorJSON(1302)
	errorTooFewParticipants = errorJSON(1303)

	errorOfferNotFound   = errorJSON(1400)
	errorOfferNotPending = errorJSON(1401)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
