// Package handler provides HTTP request handlers for the SNU Hangout dating API.
//
// Each handler struct wraps one service and serves one feature area: the
// dating profile and questionnaire, the ranked match list, and connection
// requests.
//
// # Handler Pattern
//
//   - Constructor function (NewXxxHandler) accepts its service
//   - The caller's user id comes from the auth middleware via middleware.GetUserID
//   - Request bodies are decoded with DecodeJSON and checked with the model's Validate
//   - Service errors go through MapServiceError and become RFC 9457 Problem Details
//
// # Response Format
//
//   - WriteData: Single resource with optional HATEOAS links
//   - WriteCollection: List of resources
//   - WriteError: RFC 9457 Problem Details error response
//
// # Example Usage
//
//	datingHandler := handler.NewDatingHandler(datingService)
//	mux.HandleFunc("GET /v1/dating/profile", datingHandler.GetProfile)
//	mux.HandleFunc("PUT /v1/dating/profile", datingHandler.UpsertProfile)
package handler
