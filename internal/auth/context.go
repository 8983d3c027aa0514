package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pymerp/gastro-catalog/internal/apperr"
)

// HeaderCompanyID is set by the upstream gateway after authentication. The
// engine trusts it and only scopes queries by it.
const HeaderCompanyID = "X-Company-Id"

const companyIDKey = "company_id"

// CompanyID returns the tenant identity for the request, or "".
func CompanyID(c *gin.Context) string {
	if v := c.GetString(companyIDKey); v != "" {
		return v
	}
	return c.GetHeader(HeaderCompanyID)
}

// RequireCompany rejects requests without a tenant identity. Every route in
// this service is tenant-scoped, so it is installed group-wide.
func RequireCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.GetHeader(HeaderCompanyID)
		if companyID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperr.Payload{
				Message: "missing " + HeaderCompanyID + " header",
				TraceID: c.GetString("request_id"),
			})
			return
		}
		c.Set(companyIDKey, companyID)
		c.Next()
	}
}
