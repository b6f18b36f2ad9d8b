package rules

var suggestions = map[string][]string{
	"404": {
		"Check for broken internal links and fix them",
		"Implement proper redirects for moved or deleted content",
		"Create custom 404 error pages with helpful navigation",
		"Review and update your sitemap",
		"Set up monitoring for frequently accessed missing resources",
	},
	"500": {
		"Review server error logs for detailed stack traces",
		"Check database connectivity and query performance",
		"Monitor server resource usage (CPU, memory, disk)",
		"Implement proper error handling in application code",
		"Set up automated alerting for server errors",
	},
	"401": {
		"Review authentication token expiration policies",
		"Check for issues with session management",
		"Implement proper error handling for expired sessions",
		"Consider implementing refresh token mechanisms",
		"Review access control configurations",
	},
	"403": {
		"Review user permission settings and role-based access",
		"Check for proper authorization implementations",
		"Audit file and directory permissions",
		"Review API endpoint access controls",
		"Implement proper error messages for access denials",
	},
	"APPLICATION_ERROR": {
		"Add comprehensive logging to identify root causes",
		"Implement proper exception handling",
		"Review recent code changes for potential issues",
		"Set up application performance monitoring",
		"Consider implementing circuit breaker patterns",
	},
	"DATABASE_ERROR": {
		"Check database connection pool configuration",
		"Review slow query logs and optimize queries",
		"Monitor database resource usage",
		"Implement proper database backup and recovery",
		"Consider database connection retry mechanisms",
	},
	"SECURITY_VIOLATION": {
		"Implement additional security monitoring",
		"Review and update security policies",
		"Consider implementing rate limiting",
		"Set up immediate alerting for security events",
		"Review access logs for suspicious patterns",
	},
}

var genericSuggestions = []string{
	"Review logs for patterns and root causes",
	"Implement monitoring and alerting",
	"Consider adding additional error handling",
	"Document and track error resolution steps",
}

// SuggestionsFor returns remediation hints for a category, falling back to
// the generic list for categories without dedicated advice.
func SuggestionsFor(category string) []string {
	list, ok := suggestions[category]
	if !ok {
		list = genericSuggestions
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}
