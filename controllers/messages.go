// Package controllers provides the HTTP handlers for the application.
// File: controllers/messages.go
package controllers

// registrationMessages holds the client-facing outcome copy in both
// languages, keyed by outcome then language.
var registrationMessages = map[string]map[string]string{
	"success": {
		"ar": "تم تأكيد تسجيلك في التحدي، تفقد بريدك الإلكتروني للحصول على رابط اللقاء.",
		"en": "Your seat is confirmed. Check your inbox for the meeting link.",
	},
	"full": {
		"ar": "التحدي مكتمل حالياً وتمت إضافتك إلى قائمة الانتظار، سنراسلك فور توفر مقعد.",
		"en": "The challenge is full; you are on the waitlist and we will email you when a seat frees up.",
	},
	"already_registered": {
		"ar": "هذا البريد الإلكتروني مسجل من قبل.",
		"en": "This email address is already registered.",
	},
	"error": {
		"ar": "تعذر إتمام التسجيل، الرجاء المحاولة مرة أخرى.",
		"en": "Registration could not be completed, please try again.",
	},
}

// outcomeMessage returns the localized copy for a registration outcome.
func outcomeMessage(outcome, lang string) string {
	if byLang, ok := registrationMessages[outcome]; ok {
		if msg, ok := byLang[lang]; ok {
			return msg
		}
		return byLang["ar"]
	}
	return ""
}
