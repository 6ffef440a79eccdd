package emails

// EmailServiceType delivers templated transactional mail: enrollment
// welcomes, lockout notices and security alerts.
type EmailServiceType interface {
	SendEmail(toEmail string, subject string, templateName string, opts interface{}) bool
	loadTemplates(templateName string, opts interface{}) *string
}
