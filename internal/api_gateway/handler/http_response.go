package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vending-controller/internal/api_gateway/middleware"
)

// Error codes used in response envelopes
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeConfigError        = "CONFIG_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeConfigurationFault = "CONFIGURATION_FAULT"
	CodeInternalError      = "INTERNAL_SERVER_ERROR"
)

// Response represents a standard API response
type Response struct {
	Data          interface{} `json:"data,omitempty"`
	Error         *ErrorInfo  `json:"error,omitempty"`
	CorrelationID string      `json:"correlation_id,omitempty"`
	Meta          *MetaInfo   `json:"meta,omitempty"`
}

// ErrorInfo represents error information in a response
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MetaInfo represents metadata in a response
type MetaInfo struct {
	Page       int `json:"page,omitempty"`
	PerPage    int `json:"per_page,omitempty"`
	TotalPages int `json:"total_pages,omitempty"`
	TotalItems int `json:"total_items,omitempty"`
}

// NewPaginatedResponse creates a new paginated response
func NewPaginatedResponse(data interface{}, page, perPage, totalItems int) *Response {
	totalPages := 0
	if perPage > 0 {
		totalPages = (totalItems + perPage - 1) / perPage
	}

	return &Response{
		Data: data,
		Meta: &MetaInfo{
			Page:       page,
			PerPage:    perPage,
			TotalPages: totalPages,
			TotalItems: totalItems,
		},
	}
}

func respond(c *gin.Context, statusCode int, response *Response) {
	response.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(statusCode, response)
}

// RespondWithData sends a JSON response with data
func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	respond(c, statusCode, &Response{Data: data})
}

// RespondWithError sends a JSON response with an error
func RespondWithError(c *gin.Context, statusCode int, code, message string) {
	respond(c, statusCode, &Response{Error: &ErrorInfo{Code: code, Message: message}})
}

// RespondWithPaginatedData sends a JSON response with paginated data
func RespondWithPaginatedData(c *gin.Context, statusCode int, data interface{}, page, perPage, totalItems int) {
	respond(c, statusCode, NewPaginatedResponse(data, page, perPage, totalItems))
}

// RespondOK sends a 200 OK response with data
func RespondOK(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusOK, data)
}

// RespondCreated sends a 201 Created response with data
func RespondCreated(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusCreated, data)
}

// RespondBadRequest sends a 400 Bad Request response with an error
func RespondBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, CodeBadRequest, message)
}

// RespondConfigError sends a 400 response for invalid machine configuration
func RespondConfigError(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, CodeConfigError, message)
}

// RespondNotFound sends a 404 Not Found response with an error
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, CodeNotFound, message)
}

// RespondConfigurationFault sends a 500 response that still carries the
// outcome, since the customer's balance is held and can be refunded.
func RespondConfigurationFault(c *gin.Context, data interface{}, reason string) {
	respond(c, http.StatusInternalServerError, &Response{
		Data:  data,
		Error: &ErrorInfo{Code: CodeConfigurationFault, Message: reason},
	})
}

// RespondInternalError sends a 500 Internal Server Error response with an error
func RespondInternalError(c *gin.Context) {
	RespondWithError(c, http.StatusInternalServerError, CodeInternalError, "An internal server error occurred")
}
