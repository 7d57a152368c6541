package detect

import "github.com/ppiankov/leakguard/internal/model"

// SMSMaxLength is the length below which unclassified text counts as a message
const SMSMaxLength = 200

// Classify guesses the content type of text. Rules are tried in priority
// order and the first match wins.
func Classify(text string) model.ContentType {
	switch {
	case len(Emails(text)) > 0:
		return model.TypeEmail
	case HasLinkPrefix(text):
		return model.TypeLink
	case HasPhonePattern(text):
		return model.TypePhone
	case Length(text) < SMSMaxLength:
		return model.TypeSMS
	default:
		return model.TypeOther
	}
}

// Resolve returns the declared type unless it is auto, in which case the
// text is classified
func Resolve(text string, declared model.ContentType) model.ContentType {
	if declared != model.TypeAuto && declared != "" {
		return declared
	}
	return Classify(text)
}
