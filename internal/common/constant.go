package common

// LanguageCookieName stores the visitor's language preference on the public site.
const LanguageCookieName = "lang"

// LanguageParam is the query parameter used to select a display language.
const LanguageParam = "lang"
